package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"career-compass/internal/config"
	"career-compass/internal/domain/catalog"
	"career-compass/internal/domain/classifier"
	"career-compass/internal/domain/profile"
	"career-compass/internal/domain/recommend"
	"career-compass/internal/infrastructure/datasource"
	"career-compass/internal/infrastructure/document"
)

func main() {
	datasetPath := flag.String("dataset", "data/career_dataset.csv", "labeled training CSV")
	keywordsFile := flag.String("keywords", "", "optional YAML keyword lists for resume parsing")
	resume := flag.String("file", "", "resume to analyze ("+strings.Join(document.Extensions(), ", ")+")")
	education := flag.String("education", "", "education level")
	skills := flag.String("skills", "", "skills separated by ';'")
	interests := flag.String("interests", "", "interests")
	flag.Parse()

	ctx := context.Background()

	records, err := datasource.File{Path: *datasetPath}.Load(ctx)
	if err != nil {
		log.Fatalf("load dataset: %v", err)
	}
	model, err := classifier.Train(records, classifier.DefaultOptions())
	if err != nil {
		log.Fatalf("train model: %v", err)
	}

	cat := catalog.Default()
	edu, sk, in := *education, *skills, *interests

	if *resume != "" {
		kw, err := config.LoadKeywords(*keywordsFile)
		if err != nil {
			log.Fatalf("load keywords: %v", err)
		}
		data, err := os.ReadFile(*resume)
		if err != nil {
			log.Fatalf("read resume: %v", err)
		}
		text, err := document.NewReader().ReadText(ctx, filepath.Base(*resume), "", data)
		if err != nil {
			log.Fatalf("extract resume text: %v", err)
		}
		p := profile.NewExtractor(kw, cat).Extract(text)
		fmt.Printf("Education: %s\nSkills: %s\nInterests: %s\n\n", p.Education, p.Skills, p.Interests)
		edu, sk, in = p.Education, p.Skills, p.Interests
	}

	res := recommend.NewComposer(model, cat).Compose(edu, sk, in)
	fmt.Print(res.Text())
}

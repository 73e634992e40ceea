package catalog

import "strings"

type Entry struct {
	Keyword string `json:"keyword"`
	URL     string `json:"url"`
}

// Catalog is an ordered, immutable skill keyword to learning resource mapping.
// Iteration order is significant: extraction and resource matching follow it.
type Catalog struct {
	entries []Entry
	index   map[string]int
}

func New(entries []Entry) Catalog {
	c := Catalog{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		k := strings.ToLower(strings.TrimSpace(e.Keyword))
		if k == "" {
			continue
		}
		if _, ok := c.index[k]; ok {
			continue
		}
		c.index[k] = len(c.entries)
		c.entries = append(c.entries, Entry{Keyword: k, URL: strings.TrimSpace(e.URL)})
	}
	return c
}

func Default() Catalog {
	return New(DefaultEntries)
}

var DefaultEntries = []Entry{
	{Keyword: "python", URL: "https://www.learnpython.org/"},
	{Keyword: "machine learning", URL: "https://www.coursera.org/learn/machine-learning"},
	{Keyword: "data analysis", URL: "https://www.kaggle.com/learn/pandas"},
	{Keyword: "deep learning", URL: "https://www.deeplearning.ai/"},
	{Keyword: "cloud computing", URL: "https://www.coursera.org/specializations/google-cloud-platform"},
	{Keyword: "java", URL: "https://www.codecademy.com/learn/learn-java"},
	{Keyword: "project management", URL: "https://www.coursera.org/specializations/project-management"},
	{Keyword: "ui/ux", URL: "https://www.interaction-design.org/courses"},
	{Keyword: "graphic design", URL: "https://www.canva.com/learn/graphic-design/"},
	{Keyword: "communication", URL: "https://www.coursera.org/learn/wharton-communication-skills"},
	{Keyword: "system design", URL: "https://www.educative.io/courses/grokking-the-system-design-interview"},
}

// LookupAll returns a copy of every entry in catalog order.
func (c Catalog) LookupAll() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c Catalog) Keywords() []string {
	out := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e.Keyword)
	}
	return out
}

func (c Catalog) URL(keyword string) (string, bool) {
	i, ok := c.index[strings.ToLower(strings.TrimSpace(keyword))]
	if !ok {
		return "", false
	}
	return c.entries[i].URL, true
}

func (c Catalog) Len() int {
	return len(c.entries)
}

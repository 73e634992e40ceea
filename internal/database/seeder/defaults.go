package seeder

// Defaults seeds the skill catalog and the training dataset found at
// datasetPath.
func Defaults(datasetPath string) []Seeder {
	return []Seeder{
		SkillResourcesSeeder{},
		TrainingRecordsSeeder{Path: datasetPath},
	}
}

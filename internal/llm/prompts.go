package llm

import _ "embed"

var (
	//go:embed prompts/cv_structure.txt
	cvStructure string
	//go:embed prompts/generation_rules.txt
	generationRules string
	//go:embed prompts/envelope.txt
	envelope string
)

// CvStructurePrompt returns the JSON shape the model must produce for the CV section.
func CvStructurePrompt() string {
	return cvStructure
}

// GenerationRulesPrompt returns the tailoring rules for document generation.
func GenerationRulesPrompt() string {
	return generationRules
}

// EnvelopePrompt returns the output envelope contract.
func EnvelopePrompt() string {
	return envelope
}

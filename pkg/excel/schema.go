package excel

import "fmt"

// Validate checks a schema once at load time so misconfigured synonym tables
// fail startup instead of individual row accesses.
func (s HeaderSchema) Validate() error {
	if len(s.KeySynonyms) == 0 {
		return fmt.Errorf("excel: schema has no key column synonyms")
	}
	seen := make(map[string]string)
	for _, spec := range s.Fields {
		if spec.Name == "" {
			return fmt.Errorf("excel: schema has a field with no canonical name")
		}
		if len(spec.Synonyms) == 0 {
			return fmt.Errorf("excel: field %q has no synonyms", spec.Name)
		}
		for _, synonym := range spec.Synonyms {
			normalized := normalizeHeader(synonym)
			if normalized == "" {
				return fmt.Errorf("excel: field %q has a blank synonym", spec.Name)
			}
			if owner, ok := seen[normalized]; ok && owner != spec.Name {
				return fmt.Errorf("excel: synonym %q claimed by both %q and %q", synonym, owner, spec.Name)
			}
			seen[normalized] = spec.Name
		}
	}
	return nil
}

// MustValidate panics on an invalid schema. Intended for package init of the
// per-kind schema tables.
func (s HeaderSchema) MustValidate() HeaderSchema {
	if err := s.Validate(); err != nil {
		panic(err)
	}
	return s
}

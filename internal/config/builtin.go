package config

// BuiltinPresets returns the built-in layout presets.
//
// Presets leave every window list empty, so loading one restructures the
// frames of a tag while its windows stay where the tree shape allows.
// User presets with the same name replace these.
func BuiltinPresets() map[string]string {
	return map[string]string{
		"single":        "(clients max:0)",
		"grid":          "(clients grid:0)",
		"columns":       "(split horizontal:0.5:0 (clients vertical:0) (clients vertical:0))",
		"rows":          "(split vertical:0.5:0 (clients horizontal:0) (clients horizontal:0))",
		"main-stack":    "(split horizontal:0.6:0 (clients max:0) (clients vertical:0))",
		"three-columns": "(split horizontal:0.33:0 (clients vertical:0) (split horizontal:0.5:0 (clients vertical:0) (clients vertical:0)))",
	}
}

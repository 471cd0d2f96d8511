package config

// Merge overlays a parsed config file onto base, returning a new Config
// without mutating base. Returns base unchanged if f is nil.
func Merge(base *Config, f *FileConfig) *Config {
	if f == nil {
		return base
	}

	merged := base.Clone()

	if f.HooksDir != "" {
		merged.HooksDir = f.HooksDir
	}
	if f.Timeout != 0 {
		merged.Timeout = f.Timeout
	}
	if f.Output != "" {
		merged.Output = f.Output
	}
	if f.Theme != "" {
		merged.Theme = f.Theme
	}
	if f.HistoryLimit != nil {
		merged.HistoryLimit = *f.HistoryLimit
	}

	// Types and entries merge field by field so a local file can override a
	// single setting of a globally configured entry.
	for name, tc := range f.Types {
		cur := merged.Types[name]
		if tc.Timeout != 0 {
			cur.Timeout = tc.Timeout
		}
		if tc.Enabled != nil {
			cur.Enabled = tc.Enabled
		}
		merged.Types[name] = cur
	}
	for key, ec := range f.Entries {
		cur := merged.Entries[key]
		if ec.Enabled != nil {
			cur.Enabled = ec.Enabled
		}
		if ec.Fatal != nil {
			cur.Fatal = ec.Fatal
		}
		if ec.Timeout != 0 {
			cur.Timeout = ec.Timeout
		}
		merged.Entries[key] = cur
	}

	return merged
}

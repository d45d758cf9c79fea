package output

// SettingsReader is the read side of the user settings store.
// Read never fails: unknown or unset keys yield the built-in default or nil.
type SettingsReader interface {
	Read(key string) any
}

// SettingChange describes one changed key.
type SettingChange struct {
	Key   string
	Value any
}

type SettingsPort interface {
	SettingsReader

	Write(key string, value any) error
	// Subscribe registers fn for change events and returns a cancel func.
	Subscribe(fn func(SettingChange)) (cancel func())
}

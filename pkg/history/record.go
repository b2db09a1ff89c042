package history

// Record is an entity the audit sink can persist: a stable key plus the
// ordered display strings of the persisted row.
type Record interface {
	PersistKey() string
	ToFields() []string
}

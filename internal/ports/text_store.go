package ports

// TextStore persists and reads back short plain-text files.
type TextStore interface {
	WriteText(path, content string) error
	ReadText(path string) (string, error)
}

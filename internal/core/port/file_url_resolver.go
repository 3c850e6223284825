package port

// FileURLResolverPort превращает сохраненный путь файла в публичный URL.
// Используется только слоем чтения; абсолютные URL возвращаются как есть.
type FileURLResolverPort interface {
	Resolve(path string) string
}

package fileurl

import "strings"

// PublicURLResolver превращает относительные пути файлов в публичные URL
// файлового хранилища. Абсолютные URL проходят без изменений.
type PublicURLResolver struct {
	baseURL string
}

func NewPublicURLResolver(baseURL string) *PublicURLResolver {
	return &PublicURLResolver{baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (r *PublicURLResolver) Resolve(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return r.baseURL + "/" + strings.TrimPrefix(path, "/")
}

package postgres

import "fmt"

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Documents     string
	SlugRedirects string
	DocumentStats string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Documents:     fmt.Sprintf("%sdocuments", prefix),
		SlugRedirects: fmt.Sprintf("%sslug_redirects", prefix),
		DocumentStats: fmt.Sprintf("%sdocument_stats", prefix),
	}
}

package doctypes

// Rules describes the lifecycle rules attached to one document type.
type Rules struct {
	// ID is the wire value ("own", "curated", "inspiration"), set from
	// the YAML map key.
	ID string `yaml:"-" json:"id"`

	DisplayName string `yaml:"display_name" json:"display_name"`
	Description string `yaml:"description" json:"description"`

	// RequiresCuration gates submit/publish on curation metadata being
	// present.
	RequiresCuration bool `yaml:"requires_curation" json:"requires_curation"`

	// AllowsDirectPublish permits building -> published without review.
	AllowsDirectPublish bool `yaml:"allows_direct_publish" json:"allows_direct_publish"`
}

// registryFile is the shape of the embedded YAML document.
type registryFile struct {
	Types map[string]Rules `yaml:"types"`
}

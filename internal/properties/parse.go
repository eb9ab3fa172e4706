package properties

import (
	"fmt"

	"github.com/magiconair/properties"
)

// Parse decodes property-file content (key=value or key: value lines,
// # and ! comments, standard escapes). ${} references are kept verbatim.
func Parse(data []byte) (Properties, error) {
	loader := &properties.Loader{
		Encoding:         properties.UTF8,
		DisableExpansion: true,
	}

	p, err := loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse properties: %w", err)
	}

	return Properties(p.Map()), nil
}

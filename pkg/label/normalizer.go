package label

// normalizations rewrites bare role labels into their canonical names.
// Matching is exact: no case folding, no trimming.
var normalizations = map[string]string{
	// Contributions
	"Author":    "Author Contribution",
	"Composer":  "Composer Contribution",
	"Conductor": "Conductor Contribution",
	"Creator":   "Creator Contribution",
	"Editor":    "Editor Contribution",
	"Narrator":  "Narrator Contribution",
	"Performer": "Performer Contribution",

	// Provisions
	"Publisher": "Publisher Provision",
}

// Normalize returns the canonical form of label, or label itself if it has
// none. Canonical forms map to themselves.
func Normalize(label string) string {
	if normalized, ok := normalizations[label]; ok {
		return normalized
	}
	return label
}

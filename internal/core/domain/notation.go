package domain

// Keys used in lock notations.
const (
	NameKey       = "name"
	VendorPathKey = "vendorPath"
	HostKey       = "host"
	VCSKey        = "vcs"
	URLKey        = "url"
	CommitKey     = "commit"
	TagKey        = "tag"
	DirKey        = "dir"
)

// Notation is the serializable lock-file description of a dependency.
// Values are strings or nested Notations.
type Notation map[string]any

// Clone returns a deep copy of the notation.
func (n Notation) Clone() Notation {
	if n == nil {
		return nil
	}
	c := make(Notation, len(n))
	for k, v := range n {
		switch nested := v.(type) {
		case Notation:
			c[k] = nested.Clone()
		case map[string]any:
			c[k] = Notation(nested).Clone()
		default:
			c[k] = v
		}
	}
	return c
}

// Value returns the string value stored under key, or "" if absent.
func (n Notation) Value(key string) string {
	s, _ := n[key].(string)
	return s
}

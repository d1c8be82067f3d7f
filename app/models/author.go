package models

// Validate checks if the author meets all validation requirements
func (a *Author) Validate() error {
	return validate.Struct(a)
}

// Owns reports whether the author lists id among their posts.
func (a *Author) Owns(id PostID) bool {
	for _, pid := range a.PostIDs {
		if pid == id {
			return true
		}
	}
	return false
}

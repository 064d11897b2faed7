package repositories

import "github.com/google/uuid"

// relationNamespace seeds the deterministic ids for relation rows. Deriving
// the id from the (user, target) pair makes create-if-absent atomic at the
// store: a concurrent duplicate insert fails on the id instead of producing a
// second row.
var relationNamespace = uuid.MustParse("9a1c8a2e-4f6b-5d3a-8e7c-2b0f4d6a9c11")

// RelationID returns the deterministic document id for a relation row.
func RelationID(kind, userID, targetID string) string {
	return uuid.NewSHA1(relationNamespace, []byte(kind+":"+userID+":"+targetID)).String()
}

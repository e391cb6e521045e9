package planner

// Key scheme. Keys are the only index into the store, so construction
// is deterministic and collision-free: colon-joined segments, with
// record ids as UUIDs (which never contain a colon) and owner ids
// validated against the separator at the engine boundary.
//
//	project:<id>                    project record
//	todo:<id>                       todo record
//	index:projects                  project id list
//	index:project:<pid>:todos       per-project todo id list
//
// In multi-tenant mode every key gains an "owner:<ownerID>:" prefix,
// partitioning records and indexes per owner.

// keySep separates key segments.
const keySep = ":"

// ownerPrefix returns the namespace prefix for owner, or "" in
// single-tenant mode (empty owner).
func ownerPrefix(owner string) string {
	if owner == "" {
		return ""
	}
	return "owner" + keySep + owner + keySep
}

func projectKey(owner, id string) string {
	return ownerPrefix(owner) + "project" + keySep + id
}

func todoKey(owner, id string) string {
	return ownerPrefix(owner) + "todo" + keySep + id
}

func projectIndexKey(owner string) string {
	return ownerPrefix(owner) + "index" + keySep + "projects"
}

func todoIndexKey(owner, projectID string) string {
	return ownerPrefix(owner) + "index" + keySep + "project" + keySep + projectID + keySep + "todos"
}

package catalog

// Merge resolves a conflict between an existing record and an incoming scan
// result with the same FullNumber. The policy is first-root-wins: the
// existing primary location is kept, and a discovery under a different root
// fills (or refreshes) the single alternate slot. A rediscovery under the
// primary root updates the primary fields in place.
func Merge(existing, incoming ProjectRecord) ProjectRecord {
	merged := existing
	merged.LastScanned = incoming.LastScanned

	if incoming.DriveLocation == existing.DriveLocation {
		merged.ProjectIdentity = incoming.ProjectIdentity
		merged.Name = incoming.Name
		merged.Path = incoming.Path
		return merged
	}

	merged.AlternatePath = incoming.Path
	merged.AlternateDriveLocation = incoming.DriveLocation
	return merged
}

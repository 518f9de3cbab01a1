package classifier

// PickActionable walks rankedFeatures (already sorted by decreasing
// information gain) and returns the first name present in
// actionableList. Falls back to actionableList's first entry when no
// ranked feature overlaps it (spec §4.11).
func PickActionable(rankedFeatures []string, actionableList []string) string {
	allowed := make(map[string]bool, len(actionableList))
	for _, name := range actionableList {
		allowed[name] = true
	}
	for _, name := range rankedFeatures {
		if allowed[name] {
			return name
		}
	}
	if len(actionableList) > 0 {
		return actionableList[0]
	}
	return ""
}

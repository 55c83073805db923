package services

// strPtrEqual compares two nullable strings, treating nil as distinct from
// any value. Used for the null-safe change detection that decides whether a
// record needs another outbound sync.
func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// applyText applies a nullable-text patch value: nil leaves the field
// unchanged, an empty string clears it.
func applyText(dst **string, patch *string) {
	if patch == nil {
		return
	}
	if *patch == "" {
		*dst = nil
		return
	}
	v := *patch
	*dst = &v
}

// absCents returns the absolute value of a cents amount.
func absCents(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// floorZero clamps a counter at zero.
func floorZero(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

package util

func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Nocrouch approximates the potential distance of a nocrouch jump. Not
// crouching at the end of a jump loses 4 ticks of airtime at 128 tick, so we
// add 4 ticks worth of travel at max speed to the landed distance.
func Nocrouch(distance, maxSpeed float64) float64 {
	return distance + (maxSpeed/128)*4
}

package spbm

// milliToMicro scales the firmware's milli-units to the micro-units the
// sensor interface reports.
const milliToMicro = 1000

// PowerMicrowatts converts a raw power register value (milliwatts) to
// microwatts. The scaling is exact; the widest raw value times 1000
// fits an int64 with room to spare.
func PowerMicrowatts(raw uint32) int64 {
	return int64(raw) * milliToMicro
}

// EnergyMicrojoules converts a raw energy register value (millijoules)
// to microjoules.
func EnergyMicrojoules(raw uint32) int64 {
	return int64(raw) * milliToMicro
}

// Package spbm drives the System Power Budget Manager telemetry window
// of the NVIDIA DGX Spark (GB10). The SPBM firmware continuously writes
// live power telemetry in milliwatts and cumulative energy counters in
// millijoules into a 4 KiB shared memory region; this package locates
// the region, maps it read-only, and exposes every register as a named
// hwmon channel.
package spbm

import "codeberg.org/mutker/spbmctl/internal/hwmon"

const (
	// DeviceID is the firmware identifier of the telemetry device.
	// The driver binds to nothing else.
	DeviceID = "NVDA8800"

	// RegionSize is the fixed size of the SPBM shared memory window.
	RegionSize = 0x1000

	// windowResourceIndex is the position of the telemetry window among
	// the device's memory resources (0-based). The window is
	// deliberately not the device's primary memory resource.
	windowResourceIndex = 1
)

// Register offsets within the SPBM window. Firmware writes milliwatts
// for power, cumulative millijoules for energy.
const (
	// Instantaneous power telemetry
	regSysTotal = 0x300
	regSocPkg   = 0x304
	regCPUAndG  = 0x308
	regCPUP     = 0x30C
	regCPUE     = 0x310
	regVcore    = 0x314
	regVddq     = 0x318
	regDCInput  = 0x31C
	regGpcOut   = 0x320
	regGpuOut   = 0x324
	regGpcIn    = 0x328
	regGpuIn    = 0x32C
	regSysIn    = 0x330
	regDlaIn    = 0x334
	regPreregIn = 0x338
	regDlaOut   = 0x33C

	// Energy accumulators
	regEnergyPkg  = 0x344
	regEnergyCPUE = 0x350
	regEnergyCPUP = 0x35C
	regEnergyGpc  = 0x368
	regEnergyGpm  = 0x374

	// Power limits (effective, milliwatts)
	regPL1    = 0x160
	regPL2    = 0x164
	regSysPL1 = 0x170

	// Power budgets
	regBudgetCPU  = 0x600
	regBudgetGPU  = 0x604
	regBudgetCPUE = 0x680
	regBudgetCPUP = 0x684
)

// Channel is one named telemetry register.
type Channel struct {
	Offset uint32
	Label  string
}

var powerChannels = []Channel{
	{regSysTotal, "sys_total"},
	{regSocPkg, "soc_pkg"},
	{regCPUAndG, "cpu_gpu"},
	{regCPUP, "cpu_p"},
	{regCPUE, "cpu_e"},
	{regVcore, "vcore"},
	{regVddq, "vddq"},
	{regDCInput, "dc_input"},
	{regGpuOut, "gpu_out"},
	{regGpcOut, "gpc_out"},
	{regGpuIn, "gpu_in"},
	{regGpcIn, "gpc_in"},
	{regSysIn, "sys_in"},
	{regPreregIn, "prereg_in"},
	{regDlaIn, "dla_in"},
	{regDlaOut, "dla_out"},
	{regPL1, "pl1"},
	{regPL2, "pl2"},
	{regSysPL1, "syspl1"},
	{regBudgetCPU, "budget_cpu"},
	{regBudgetGPU, "budget_gpu"},
	{regBudgetCPUE, "budget_cpu_e"},
	{regBudgetCPUP, "budget_cpu_p"},
}

var energyChannels = []Channel{
	{regEnergyPkg, "pkg"},
	{regEnergyCPUE, "cpu_e"},
	{regEnergyCPUP, "cpu_p"},
	{regEnergyGpc, "gpc"},
	{regEnergyGpm, "gpm"},
}

// Channels returns the fixed channel table for a sensor type, in
// channel-number order. The returned slice must not be modified.
func Channels(t hwmon.SensorType) []Channel {
	switch t {
	case hwmon.Power:
		return powerChannels
	case hwmon.Energy:
		return energyChannels
	default:
		return nil
	}
}

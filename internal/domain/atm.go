package domain

import "time"

// ATMStatus enumerates operational states reported for ATMs.
type ATMStatus string

const (
	ATMStatusOnline       ATMStatus = "ONLINE"
	ATMStatusOffline      ATMStatus = "OFFLINE"
	ATMStatusMaintenance  ATMStatus = "MAINTENANCE"
	ATMStatusOutOfService ATMStatus = "OUT_OF_SERVICE"
	ATMStatusCashOut      ATMStatus = "CASH_OUT"
)

// ATM is a cash machine deployed at a branch.
type ATM struct {
	ID                  string
	Code                string
	BranchID            string
	LocationDescription string
	Model               string
	Manufacturer        string
	SerialNumber        string
	IPAddress           string
	Status              ATMStatus
	CashLevel           int64
	MaxCashCapacity     int64
	LastReplenishment   *time.Time
	LastMaintenanceDate *time.Time
	NextMaintenanceDate *time.Time
	InstallationDate    time.Time
	Active              bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// CashPercentage reports current cash level relative to capacity.
func (a *ATM) CashPercentage() float64 {
	if a.MaxCashCapacity <= 0 {
		return 0
	}
	return float64(a.CashLevel) / float64(a.MaxCashCapacity) * 100
}

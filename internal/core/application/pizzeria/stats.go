package pizzeria

// ManagerState is the lifecycle state of a stage manager.
type ManagerState int32

const (
	Idle ManagerState = iota
	Dispatching
	Draining
	Terminated
)

var managerStateNames = map[ManagerState]string{
	Idle:        "idle",
	Dispatching: "dispatching",
	Draining:    "draining",
	Terminated:  "terminated",
}

func (s ManagerState) String() string {
	if name, ok := managerStateNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (s ManagerState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Stats is a point-in-time view of the pizzeria. Fields are sampled one by one,
// so they may be mutually inconsistent while orders are moving.
type Stats struct {
	Open            bool         `json:"open"`
	Submitted       int64        `json:"submitted"`
	Delivered       int64        `json:"delivered"`
	Queued          int          `json:"queued"`
	Stored          int          `json:"stored"`
	StorageCapacity int          `json:"storage_capacity"`
	StoragePeak     int          `json:"storage_peak"`
	StorageFull     bool         `json:"storage_full"`
	Bakers          int          `json:"bakers"`
	BusyBakers      int          `json:"busy_bakers"`
	Couriers        int          `json:"couriers"`
	BusyCouriers    int          `json:"busy_couriers"`
	BakerManager    ManagerState `json:"baker_manager"`
	CourierManager  ManagerState `json:"courier_manager"`
}

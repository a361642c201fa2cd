package core

type TenantType string

const (
	TenantTypeRent  TenantType = "rent"
	TenantTypeLease TenantType = "lease"
)

// UnitType tenant.unit 參照的集合
type UnitType string

const (
	UnitTypeUnit UnitType = "unit"
	UnitTypeLand UnitType = "land"
)

type UnitStatus string

const (
	UnitStatusVacant   UnitStatus = "vacant"
	UnitStatusOccupied UnitStatus = "occupied"
)

type PropertyType string

const (
	PropertyTypeCommercial PropertyType = "commercial"
	PropertyTypeVilla      PropertyType = "villa"
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeHouse      PropertyType = "house"
)

type RentStatus string

const (
	RentStatusPending RentStatus = "pending"
	RentStatusPaid    RentStatus = "paid"
	RentStatusOverdue RentStatus = "overdue"
)

var RentStatuses = []RentStatus{RentStatusPending, RentStatusPaid, RentStatusOverdue}

func (s RentStatus) Valid() bool {
	for _, v := range RentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type NotifyType string

const (
	NotifyTypeRent        NotifyType = "rent"
	NotifyTypeLease       NotifyType = "lease"
	NotifyTypeTenant      NotifyType = "tenant"
	NotifyTypeProperty    NotifyType = "property"
	NotifyTypeUnit        NotifyType = "unit"
	NotifyTypeLand        NotifyType = "land"
	NotifyTypeMaintenance NotifyType = "maintenance"
	NotifyTypeGeneral     NotifyType = "general"
)

// Action 通知與稽核共用的動作
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type ActivityType string

const (
	ActivityTypeRent        ActivityType = "rent"
	ActivityTypeLease       ActivityType = "lease"
	ActivityTypeTenant      ActivityType = "tenant"
	ActivityTypeMaintenance ActivityType = "maintenance"
)

type MaintenanceStatus string

const (
	MaintenanceStatusPending    MaintenanceStatus = "pending"
	MaintenanceStatusAssign     MaintenanceStatus = "assign"
	MaintenanceStatusInProgress MaintenanceStatus = "in-progress"
	MaintenanceStatusCompleted  MaintenanceStatus = "completed"
)

// Notice 排程或業務流程要送出的通知內容
type Notice struct {
	RecipientIDs []string
	Title        string
	Description  string
	NotifyType   NotifyType
	Action       Action
	TenantID     string
}

// Activity 稽核紀錄內容；ActorID 為空代表系統排程
type Activity struct {
	ActorID      string
	Title        string
	Details      string
	Action       Action
	ActivityType ActivityType
}

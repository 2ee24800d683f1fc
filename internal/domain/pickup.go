package domain

// PickupRequest statuses. Mutated only by the admin back-office after
// creation.
const (
	PickupPending   = "PENDING"
	PickupConfirmed = "CONFIRMED"
	PickupInTransit = "IN_TRANSIT"
	PickupCompleted = "COMPLETED"
	PickupCancelled = "CANCELLED"
)

// Lead statuses, independent of pickup statuses. A lead exists as soon
// as phone verification succeeds, even if the user abandons the flow.
const (
	LeadNew       = "NEW"
	LeadContacted = "CONTACTED"
	LeadCompleted = "COMPLETED"
	LeadRejected  = "REJECTED"
)

var pickupStatuses = map[string]bool{
	PickupPending: true, PickupConfirmed: true, PickupInTransit: true,
	PickupCompleted: true, PickupCancelled: true,
}

var leadStatuses = map[string]bool{
	LeadNew: true, LeadContacted: true, LeadCompleted: true, LeadRejected: true,
}

func ValidPickupStatus(s string) bool { return pickupStatuses[s] }
func ValidLeadStatus(s string) bool   { return leadStatuses[s] }

type Lead struct {
	ID         string `db:"id"`
	Phone      string `db:"phone"`
	Category   string `db:"category"`
	BrandName  string `db:"brand_name"`
	DeviceName string `db:"device_name"`
	CityName   string `db:"city_name"`
	QuotedAt   int64  `db:"quoted_price"`
	Status     string `db:"status"`
	CreatedAt  string `db:"created_at"`
}

type PickupRequest struct {
	ID           string `db:"id"`
	LeadID       string `db:"lead_id"`
	Phone        string `db:"phone"`
	Category     string `db:"category"`
	BrandName    string `db:"brand_name"`
	DeviceName   string `db:"device_name"`
	VariantLabel string `db:"variant_label"`
	CityName     string `db:"city_name"`
	FinalPrice   int64  `db:"final_price"`
	CustomerName string `db:"customer_name"`
	Address      string `db:"address"`
	Pincode      string `db:"pincode"`
	PickupDate   string `db:"pickup_date"` // YYYY-MM-DD
	PickupSlot   string `db:"pickup_slot"` // e.g. "10:00-13:00"
	Status       string `db:"status"`
	CreatedAt    string `db:"created_at"`
}

type AdminUser struct {
	ID    string `db:"id"`
	Email string `db:"email"`
	Name  string `db:"name"`
	Hash  string `db:"password_hash"`
}

type ActivityLog struct {
	ID        string `db:"id"`
	AdminID   string `db:"admin_id"`
	Action    string `db:"action"`
	Detail    string `db:"detail"`
	CreatedAt string `db:"created_at"`
}

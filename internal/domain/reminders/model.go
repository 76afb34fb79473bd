package reminders

import "time"

// Reminder is one tracked payment obligation: a single bill, an
// installment plan, or a recurring charge that respawns once paid.
type Reminder struct {
	ID          uint     `gorm:"primaryKey"`
	Title       string   `gorm:"not null"`
	Description string   `gorm:"not null;default:''"`
	Category    Category `gorm:"size:32;index;not null"`
	Amount      *float64 `gorm:"type:numeric(14,2)"`
	Currency    string   `gorm:"size:3;not null;default:'PYG'"`

	DueDate      time.Time  `gorm:"type:date;index;not null"`
	ReminderTime string     `gorm:"size:5;not null;default:'09:00'"`
	CreatedAt    time.Time  `gorm:"type:date;not null"`
	LastModified time.Time  `gorm:"type:date;not null"`
	LastPaid     *time.Time `gorm:"type:date"`

	IsInstallments      bool `gorm:"not null;default:false"`
	TotalInstallments   int  `gorm:"not null;default:1"`
	CurrentInstallment  int  `gorm:"not null;default:1"`
	InstallmentInterval int  `gorm:"not null;default:30"`

	IsRecurring         bool          `gorm:"not null;default:false"`
	RecurringType       RecurringType `gorm:"size:16;not null;default:'MONTHLY'"`
	CustomRecurringDays int           `gorm:"not null;default:30"`
	ReminderDaysBefore  []int         `gorm:"serializer:json"`

	WhatsappNumber string `gorm:"not null;default:''"`
	CustomMessage  string `gorm:"not null;default:''"`

	Status      Status `gorm:"size:16;index;not null;default:'ACTIVE'"`
	IsPaid      bool   `gorm:"not null;default:false"`
	IsCancelled bool   `gorm:"not null;default:false"`
	IsActive    bool   `gorm:"not null;default:true"`

	IconType PaymentIcon `gorm:"size:32;not null;default:'GENERIC'"`
	Color    string      `gorm:"size:9;not null;default:'#2196F3'"`
	Priority Priority    `gorm:"size:8;index;not null;default:'MEDIUM'"`
	Tags     []string    `gorm:"serializer:json"`
	Notes    string      `gorm:"not null;default:''"`
}

func (Reminder) TableName() string { return "payment_reminders" }

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
	StatusOverdue   Status = "OVERDUE"
	StatusPartial   Status = "PARTIAL"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPaid, StatusCancelled, StatusOverdue, StatusPartial:
		return true
	}
	return false
}

type Category string

const (
	CategoryUtilities     Category = "UTILITIES"
	CategoryWater         Category = "WATER"
	CategoryElectricity   Category = "ELECTRICITY"
	CategoryGas           Category = "GAS"
	CategoryInternet      Category = "INTERNET"
	CategoryPhone         Category = "PHONE"
	CategoryLoans         Category = "LOANS"
	CategoryCreditCards   Category = "CREDIT_CARDS"
	CategoryInsurance     Category = "INSURANCE"
	CategoryRent          Category = "RENT"
	CategorySubscriptions Category = "SUBSCRIPTIONS"
	CategoryTaxes         Category = "TAXES"
	CategoryEducation     Category = "EDUCATION"
	CategoryHealth        Category = "HEALTH"
	CategoryEntertainment Category = "ENTERTAINMENT"
	CategoryTransport     Category = "TRANSPORT"
	CategoryOther         Category = "OTHER"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryUtilities, CategoryWater, CategoryElectricity, CategoryGas,
		CategoryInternet, CategoryPhone, CategoryLoans, CategoryCreditCards,
		CategoryInsurance, CategoryRent, CategorySubscriptions, CategoryTaxes,
		CategoryEducation, CategoryHealth, CategoryEntertainment,
		CategoryTransport, CategoryOther:
		return true
	}
	return false
}

type RecurringType string

const (
	RecurDaily      RecurringType = "DAILY"
	RecurWeekly     RecurringType = "WEEKLY"
	RecurBiweekly   RecurringType = "BIWEEKLY"
	RecurMonthly    RecurringType = "MONTHLY"
	RecurBimonthly  RecurringType = "BIMONTHLY"
	RecurQuarterly  RecurringType = "QUARTERLY"
	RecurSemiAnnual RecurringType = "SEMI_ANNUAL"
	RecurAnnual     RecurringType = "ANNUAL"
	RecurCustom     RecurringType = "CUSTOM"
)

func (t RecurringType) Valid() bool {
	switch t {
	case RecurDaily, RecurWeekly, RecurBiweekly, RecurMonthly, RecurBimonthly,
		RecurQuarterly, RecurSemiAnnual, RecurAnnual, RecurCustom:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Rank orders priorities for sorting, URGENT first.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 1
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 3
	default:
		return 4
	}
}

type PaymentIcon string

const (
	IconGeneric       PaymentIcon = "GENERIC"
	IconWater         PaymentIcon = "WATER"
	IconElectricity   PaymentIcon = "ELECTRICITY"
	IconGas           PaymentIcon = "GAS"
	IconInternet      PaymentIcon = "INTERNET"
	IconPhone         PaymentIcon = "PHONE"
	IconCreditCard    PaymentIcon = "CREDIT_CARD"
	IconBank          PaymentIcon = "BANK"
	IconHouse         PaymentIcon = "HOUSE"
	IconCar           PaymentIcon = "CAR"
	IconHealth        PaymentIcon = "HEALTH"
	IconEducation     PaymentIcon = "EDUCATION"
	IconShopping      PaymentIcon = "SHOPPING"
	IconEntertainment PaymentIcon = "ENTERTAINMENT"
	IconTransport     PaymentIcon = "TRANSPORT"
	IconSubscription  PaymentIcon = "SUBSCRIPTION"
	IconInsurance     PaymentIcon = "INSURANCE"
	IconTax           PaymentIcon = "TAX"
)

func (i PaymentIcon) Valid() bool {
	switch i {
	case IconGeneric, IconWater, IconElectricity, IconGas, IconInternet,
		IconPhone, IconCreditCard, IconBank, IconHouse, IconCar, IconHealth,
		IconEducation, IconShopping, IconEntertainment, IconTransport,
		IconSubscription, IconInsurance, IconTax:
		return true
	}
	return false
}

type OrderBy string

const (
	OrderDateAsc    OrderBy = "DATE_ASC"
	OrderDateDesc   OrderBy = "DATE_DESC"
	OrderAmountAsc  OrderBy = "AMOUNT_ASC"
	OrderAmountDesc OrderBy = "AMOUNT_DESC"
	OrderPriority   OrderBy = "PRIORITY"
)

func (o OrderBy) Valid() bool {
	switch o {
	case OrderDateAsc, OrderDateDesc, OrderAmountAsc, OrderAmountDesc, OrderPriority:
		return true
	}
	return false
}

// Filter selects reminders matching every provided (non-nil) field.
// A blank Search imposes no constraint.
type Filter struct {
	Status    *Status
	Category  *Category
	Priority  *Priority
	MinAmount *float64
	MaxAmount *float64
	DateFrom  *time.Time
	DateTo    *time.Time
	Search    string
	OrderBy   OrderBy
}

type Statistics struct {
	ActiveCount        int64
	OverdueCount       int64
	PaidCount          int64
	TotalPendingAmount float64
}

type CategoryCount struct {
	Category Category
	Count    int64
}

type CreateInput struct {
	Title       string
	Description string
	Category    Category
	Amount      *float64
	Currency    string

	DueDate      time.Time
	ReminderTime string

	IsInstallments      bool
	TotalInstallments   int
	InstallmentInterval int

	IsRecurring         bool
	RecurringType       RecurringType
	CustomRecurringDays int
	ReminderDaysBefore  []int

	WhatsappNumber string
	CustomMessage  string

	IconType PaymentIcon
	Color    string
	Priority Priority
	Tags     []string
	Notes    string
}

type UpdateInput struct {
	ID uint

	Title       *string
	Description *string
	Category    *Category
	Amount      *float64
	AmountSet   bool
	Currency    *string

	DueDate      *time.Time
	ReminderTime *string

	IsInstallments      *bool
	TotalInstallments   *int
	InstallmentInterval *int

	IsRecurring         *bool
	RecurringType       *RecurringType
	CustomRecurringDays *int
	ReminderDaysBefore  []int

	WhatsappNumber *string
	CustomMessage  *string

	IconType *PaymentIcon
	Color    *string
	Priority *Priority
	Tags     []string
	Notes    *string
}

// PayResult reports the outcome of MarkPaid: the updated record, and for
// recurring reminders the freshly spawned next occurrence.
type PayResult struct {
	Reminder Reminder
	Spawned  *Reminder
}

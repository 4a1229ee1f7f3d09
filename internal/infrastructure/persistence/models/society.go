package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/villaledger/backend/internal/domain/society"
)

// VillaModel is the GORM model for villas
type VillaModel struct {
	BaseModel
	VillaNumber   string  `gorm:"type:varchar(20);not null;uniqueIndex"`
	ResidentName  *string `gorm:"type:varchar(100)"`
	OccupancyType *string `gorm:"type:varchar(10)"`
}

// TableName returns the table name for GORM
func (VillaModel) TableName() string {
	return "villas"
}

// ToDomain converts the model to a domain villa
func (m *VillaModel) ToDomain() *society.Villa {
	villa := &society.Villa{
		BaseEntity:   m.BaseModel.ToDomain(),
		VillaNumber:  m.VillaNumber,
		ResidentName: m.ResidentName,
	}
	if m.OccupancyType != nil {
		occupancy := society.OccupancyType(*m.OccupancyType)
		villa.OccupancyType = &occupancy
	}
	return villa
}

// FromDomain populates the model from a domain villa
func (m *VillaModel) FromDomain(v *society.Villa) {
	m.FromDomainBaseEntity(v.BaseEntity)
	m.VillaNumber = v.VillaNumber
	m.ResidentName = v.ResidentName
	if v.OccupancyType != nil {
		occupancy := v.OccupancyType.String()
		m.OccupancyType = &occupancy
	} else {
		m.OccupancyType = nil
	}
}

// PaymentCategoryModel is the GORM model for payment categories
type PaymentCategoryModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`
	IsRecurring bool   `gorm:"not null;default:true"`
	IsActive    bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (PaymentCategoryModel) TableName() string {
	return "payment_categories"
}

// ToDomain converts the model to a domain category
func (m *PaymentCategoryModel) ToDomain() *society.PaymentCategory {
	return &society.PaymentCategory{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Description: m.Description,
		IsRecurring: m.IsRecurring,
		IsActive:    m.IsActive,
	}
}

// FromDomain populates the model from a domain category
func (m *PaymentCategoryModel) FromDomain(c *society.PaymentCategory) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Description = c.Description
	m.IsRecurring = c.IsRecurring
	m.IsActive = c.IsActive
}

// PaymentModel is the GORM model for ledger rows. The composite unique
// index enforces one row per villa, category and designated period.
type PaymentModel struct {
	BaseModel
	VillaID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_payment_tuple,priority:1"`
	CategoryID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_payment_tuple,priority:2"`
	PaymentMonth     int             `gorm:"not null;uniqueIndex:idx_payment_tuple,priority:3"`
	PaymentYear      int             `gorm:"not null;uniqueIndex:idx_payment_tuple,priority:4;index"`
	ReceivableAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaymentDate      time.Time       `gorm:"not null;index"`
	PaymentMethod    string          `gorm:"type:varchar(20)"`
	Notes            string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the model to a domain payment
func (m *PaymentModel) ToDomain() *society.Payment {
	return &society.Payment{
		BaseEntity:       m.BaseModel.ToDomain(),
		VillaID:          m.VillaID,
		CategoryID:       m.CategoryID,
		ReceivableAmount: m.ReceivableAmount,
		ReceivedAmount:   m.ReceivedAmount,
		PaymentDate:      m.PaymentDate,
		PaymentMonth:     m.PaymentMonth,
		PaymentYear:      m.PaymentYear,
		PaymentMethod:    society.PaymentMethod(m.PaymentMethod),
		Notes:            m.Notes,
	}
}

// FromDomain populates the model from a domain payment
func (m *PaymentModel) FromDomain(p *society.Payment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.VillaID = p.VillaID
	m.CategoryID = p.CategoryID
	m.ReceivableAmount = p.ReceivableAmount
	m.ReceivedAmount = p.ReceivedAmount
	m.PaymentDate = p.PaymentDate
	m.PaymentMonth = p.PaymentMonth
	m.PaymentYear = p.PaymentYear
	m.PaymentMethod = p.PaymentMethod.String()
	m.Notes = p.Notes
}

// ExpenseModel is the GORM model for society expenses
type ExpenseModel struct {
	BaseModel
	Category      string          `gorm:"type:varchar(100);not null;index"`
	Description   string          `gorm:"type:text"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ExpenseDate   time.Time       `gorm:"not null;index"`
	ExpenseMonth  int             `gorm:"not null;index:idx_expense_period"`
	ExpenseYear   int             `gorm:"not null;index:idx_expense_period"`
	PaymentMethod string          `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the model to a domain expense
func (m *ExpenseModel) ToDomain() *society.Expense {
	return &society.Expense{
		BaseEntity:    m.BaseModel.ToDomain(),
		Category:      m.Category,
		Description:   m.Description,
		Amount:        m.Amount,
		ExpenseDate:   m.ExpenseDate,
		ExpenseMonth:  m.ExpenseMonth,
		ExpenseYear:   m.ExpenseYear,
		PaymentMethod: society.PaymentMethod(m.PaymentMethod),
	}
}

// FromDomain populates the model from a domain expense
func (m *ExpenseModel) FromDomain(e *society.Expense) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Category = e.Category
	m.Description = e.Description
	m.Amount = e.Amount
	m.ExpenseDate = e.ExpenseDate
	m.ExpenseMonth = e.ExpenseMonth
	m.ExpenseYear = e.ExpenseYear
	m.PaymentMethod = e.PaymentMethod.String()
}

// MonthlyBalanceModel is the GORM model for balance snapshots. One row
// per period.
type MonthlyBalanceModel struct {
	BaseModel
	Month           int             `gorm:"not null;uniqueIndex:idx_balance_period,priority:1"`
	Year            int             `gorm:"not null;uniqueIndex:idx_balance_period,priority:2"`
	PreviousBalance decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalReceipts   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalExpenses   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CurrentBalance  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	IsGenerated     bool            `gorm:"not null;default:false"`
	GeneratedAt     *time.Time
}

// TableName returns the table name for GORM
func (MonthlyBalanceModel) TableName() string {
	return "monthly_balances"
}

// ToDomain converts the model to a domain balance snapshot
func (m *MonthlyBalanceModel) ToDomain() *society.MonthlyBalance {
	return &society.MonthlyBalance{
		BaseEntity:      m.BaseModel.ToDomain(),
		Month:           m.Month,
		Year:            m.Year,
		PreviousBalance: m.PreviousBalance,
		TotalReceipts:   m.TotalReceipts,
		TotalExpenses:   m.TotalExpenses,
		CurrentBalance:  m.CurrentBalance,
		IsGenerated:     m.IsGenerated,
		GeneratedAt:     m.GeneratedAt,
	}
}

// FromDomain populates the model from a domain balance snapshot
func (m *MonthlyBalanceModel) FromDomain(b *society.MonthlyBalance) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.Month = b.Month
	m.Year = b.Year
	m.PreviousBalance = b.PreviousBalance
	m.TotalReceipts = b.TotalReceipts
	m.TotalExpenses = b.TotalExpenses
	m.CurrentBalance = b.CurrentBalance
	m.IsGenerated = b.IsGenerated
	m.GeneratedAt = b.GeneratedAt
}

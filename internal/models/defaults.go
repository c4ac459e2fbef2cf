package models

// DefaultCategorySpec describes one entry of the system-provided
// category set seeded for every user.
type DefaultCategorySpec struct {
	Name   string
	NameID string
	Icon   string
	Type   CategoryType
}

// DefaultCategories is the fixed system category set. Seeding is
// idempotent: entries already present (matched by type + name,
// case-insensitively) are never duplicated.
var DefaultCategories = []DefaultCategorySpec{
	// Expenses
	{Name: "Food & Drinks", NameID: "Makan & Minum", Icon: "🍔", Type: CategoryTypeExpense},
	{Name: "Transportation", NameID: "Transportasi", Icon: "🚗", Type: CategoryTypeExpense},
	{Name: "Housing", NameID: "Tempat Tinggal", Icon: "🏠", Type: CategoryTypeExpense},
	{Name: "Shopping", NameID: "Belanja", Icon: "🛒", Type: CategoryTypeExpense},
	{Name: "Bills", NameID: "Tagihan", Icon: "📄", Type: CategoryTypeExpense},
	{Name: "Installments", NameID: "Cicilan", Icon: "📉", Type: CategoryTypeExpense},
	{Name: "Health", NameID: "Kesehatan", Icon: "💊", Type: CategoryTypeExpense},
	{Name: "Education", NameID: "Pendidikan", Icon: "📚", Type: CategoryTypeExpense},
	{Name: "Entertainment", NameID: "Hiburan", Icon: "🎮", Type: CategoryTypeExpense},
	{Name: "Lifestyle", NameID: "Gaya Hidup", Icon: "✨", Type: CategoryTypeExpense},
	{Name: "Fashion", NameID: "Fashion", Icon: "👕", Type: CategoryTypeExpense},
	{Name: "Personal Care", NameID: "Perawatan Diri", Icon: "🧴", Type: CategoryTypeExpense},
	{Name: "Social", NameID: "Sosial", Icon: "🤝", Type: CategoryTypeExpense},
	{Name: "Lost Money", NameID: "Uang Hilang", Icon: "🕳️", Type: CategoryTypeExpense},
	{Name: "Donation", NameID: "Donasi", Icon: "🙏", Type: CategoryTypeExpense},
	{Name: "Family", NameID: "Keluarga", Icon: "👨‍👩‍👧‍👦", Type: CategoryTypeExpense},
	{Name: "Children", NameID: "Anak", Icon: "🧒", Type: CategoryTypeExpense},
	{Name: "Work Needs", NameID: "Keperluan Kerja", Icon: "💼", Type: CategoryTypeExpense},
	{Name: "Business", NameID: "Bisnis", Icon: "🏢", Type: CategoryTypeExpense},
	{Name: "Investment", NameID: "Investasi", Icon: "📈", Type: CategoryTypeExpense},
	{Name: "Savings", NameID: "Tabungan", Icon: "🏦", Type: CategoryTypeExpense},
	{Name: "Insurance", NameID: "Asuransi", Icon: "🛡️", Type: CategoryTypeExpense},
	{Name: "Tax", NameID: "Pajak", Icon: "🧾", Type: CategoryTypeExpense},
	{Name: "Gadget & Electronics", NameID: "Gadget & Elektronik", Icon: "📱", Type: CategoryTypeExpense},
	{Name: "Subscription", NameID: "Langganan (Subscription)", Icon: "🔁", Type: CategoryTypeExpense},
	{Name: "Travel", NameID: "Liburan", Icon: "✈️", Type: CategoryTypeExpense},
	{Name: "Hobbies", NameID: "Hobi", Icon: "🎨", Type: CategoryTypeExpense},
	{Name: "Sports", NameID: "Olahraga", Icon: "🏃", Type: CategoryTypeExpense},

	// Income
	{Name: "Salary", NameID: "Gaji", Icon: "💵", Type: CategoryTypeIncome},
	{Name: "Bonus", NameID: "Bonus", Icon: "🎁", Type: CategoryTypeIncome},
	{Name: "Investment Return", NameID: "Hasil Investasi", Icon: "📈", Type: CategoryTypeIncome},
	{Name: "Gift", NameID: "Hadiah", Icon: "🎀", Type: CategoryTypeIncome},
	{Name: "Other Income", NameID: "Pendapatan Lain", Icon: "💰", Type: CategoryTypeIncome},
}

// DefaultAccountSpec describes an account created for new users.
type DefaultAccountSpec struct {
	Name      string
	Type      AccountType
	Icon      string
	IsDefault bool
}

// DefaultAccounts is the account set seeded for new users. The single
// entry is the primary account all chat transactions land on.
var DefaultAccounts = []DefaultAccountSpec{
	{Name: "Cash", Type: AccountTypeCash, Icon: "💵", IsDefault: true},
}

// Fallback category names used when an AI guess matches nothing.
const (
	FallbackExpenseCategory = "Shopping"
	FallbackIncomeCategory  = "Other Income"
)

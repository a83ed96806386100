// Package i18n holds the English and Arabic interface strings.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Supported language codes. English is the fallback.
const (
	English = "en"
	Arabic  = "ar"
)

// Message keys.
const (
	Title             = "title"
	NewOrder          = "newOrder"
	SearchPlaceholder = "searchPlaceholder"
	AllStatuses       = "allStatuses"
	AllClinics        = "allClinics"
	SortBy            = "sortBy"
	Received          = "received"
	DueDate           = "dueDate"
	Status            = "status"
	Actions           = "actions"
	Summary           = "summary"
	TotalOrders       = "totalOrders"
	QuickActions      = "quickActions"
	LoadSample        = "loadSample"
	ClearAll          = "clearAll"
	Edit              = "edit"
	Delete            = "delete"
	Save              = "save"
	Cancel            = "cancel"
	ReceivedDate      = "receivedDate"
	TypeLabel         = "typeLabel"
	ContactLabel      = "contactLabel"
	Notes             = "notes"
	ImportCSV         = "importCSV"
	ExportCSV         = "exportCSV"
	Language          = "language"
	ClinicName        = "clinicName"
	ConfirmDelete     = "confirmDelete"
	ConfirmClear      = "confirmClear"
	ImportedRows      = "importedRows"
	ImportFailed      = "importFailed"
	SkippedRow        = "skippedRow"
	IgnoredColumns    = "ignoredColumns"
	NoOrders          = "noOrders"
	Aborted           = "aborted"
	OrderSaved        = "orderSaved"
	OrderDeleted      = "orderDeleted"
	OrdersCleared     = "ordersCleared"
	SampleLoaded      = "sampleLoaded"
	ExportWritten     = "exportWritten"
	LanguageSet       = "languageSet"
	CurrentLanguage   = "currentLanguage"
	ArchivedAs        = "archivedAs"
	TypeColumn        = "typeColumn"
	ContactColumn     = "contactColumn"
)

var messages = map[string]map[string]string{
	English: {
		Title:             "DentalLab CRM",
		NewOrder:          "+ New Order",
		SearchPlaceholder: "Search clinics, types, notes...",
		AllStatuses:       "All statuses",
		AllClinics:        "All clinics",
		SortBy:            "Sort by",
		Received:          "Received",
		DueDate:           "Due date",
		Status:            "Status",
		Actions:           "Actions",
		Summary:           "Summary",
		TotalOrders:       "Total orders",
		QuickActions:      "Quick actions",
		LoadSample:        "Load sample data",
		ClearAll:          "Clear all",
		Edit:              "Edit",
		Delete:            "Delete",
		Save:              "Save",
		Cancel:            "Cancel",
		ReceivedDate:      "Received date",
		TypeLabel:         "Type (e.g., Crown, Bridge)",
		ContactLabel:      "Contact (email/phone)",
		Notes:             "Notes",
		ImportCSV:         "Import CSV",
		ExportCSV:         "Export CSV",
		Language:          "EN / AR",
		ClinicName:        "Clinic name",
		ConfirmDelete:     "Delete this order?",
		ConfirmClear:      "Clear all orders?",
		ImportedRows:      "Imported %d rows.",
		ImportFailed:      "Failed to import CSV: %v",
		SkippedRow:        "Skipped line %d: %s",
		IgnoredColumns:    "Ignored columns: %s",
		NoOrders:          "No orders.",
		Aborted:           "Aborted.",
		OrderSaved:        "Saved order %s.",
		OrderDeleted:      "Deleted order %s.",
		OrdersCleared:     "All orders cleared.",
		SampleLoaded:      "Sample data loaded.",
		ExportWritten:     "Wrote %s.",
		LanguageSet:       "Language set to %s.",
		CurrentLanguage:   "Language: %s (%s)",
		ArchivedAs:        "Archived as %s.",
		TypeColumn:        "Type",
		ContactColumn:     "Contact",
	},
	Arabic: {
		Title:             "نظام إدارة مخبر الأسنان",
		NewOrder:          "+ طلب جديد",
		SearchPlaceholder: "ابحث عن العيادات، النوع، الملاحظات...",
		AllStatuses:       "كل الحالات",
		AllClinics:        "كل العيادات",
		SortBy:            "فرز حسب",
		Received:          "تاريخ الاستلام",
		DueDate:           "تاريخ الاستحقاق",
		Status:            "الحالة",
		Actions:           "الإجراءات",
		Summary:           "ملخص",
		TotalOrders:       "إجمالي الطلبات",
		QuickActions:      "إجراءات سريعة",
		LoadSample:        "تحميل بيانات نموذجية",
		ClearAll:          "مسح الكل",
		Edit:              "تعديل",
		Delete:            "حذف",
		Save:              "حفظ",
		Cancel:            "إلغاء",
		ReceivedDate:      "تاريخ الاستلام",
		TypeLabel:         "النوع (مثال: تركيب، جسر)",
		ContactLabel:      "جهة الاتصال (البريد/الهاتف)",
		Notes:             "ملاحظات",
		ImportCSV:         "استيراد CSV",
		ExportCSV:         "تصدير CSV",
		Language:          "EN / AR",
		ClinicName:        "اسم العيادة",
		ConfirmDelete:     "هل تريد حذف هذا الطلب؟",
		ConfirmClear:      "هل تريد مسح جميع الطلبات؟",
		ImportedRows:      "تم استيراد %d صف.",
		ImportFailed:      "فشل استيراد CSV: %v",
		SkippedRow:        "تم تخطي السطر %d: %s",
		IgnoredColumns:    "أعمدة متجاهلة: %s",
		NoOrders:          "لا توجد طلبات.",
		Aborted:           "تم الإلغاء.",
		OrderSaved:        "تم حفظ الطلب %s.",
		OrderDeleted:      "تم حذف الطلب %s.",
		OrdersCleared:     "تم مسح جميع الطلبات.",
		SampleLoaded:      "تم تحميل البيانات النموذجية.",
		ExportWritten:     "تم حفظ %s.",
		LanguageSet:       "تم تعيين اللغة إلى %s.",
		CurrentLanguage:   "اللغة: %s (%s)",
		ArchivedAs:        "تمت الأرشفة باسم %s.",
		TypeColumn:        "النوع",
		ContactColumn:     "جهة الاتصال",
	},
}

var builder = mustBuild()

func mustBuild() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for code, table := range messages {
		tag := language.MustParse(code)
		for key, text := range table {
			if err := b.SetString(tag, key, text); err != nil {
				panic(fmt.Sprintf("register %s/%s: %v", code, key, err))
			}
		}
	}
	return b
}

// Supported lists the language codes with a catalog, fallback first.
func Supported() []string {
	return []string{English, Arabic}
}

// Normalize maps code onto a supported language, defaulting to English.
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if _, ok := messages[code]; ok {
		return code
	}
	return English
}

// Direction returns the text direction for code: rtl for Arabic, ltr
// otherwise.
func Direction(code string) string {
	if Normalize(code) == Arabic {
		return "rtl"
	}
	return "ltr"
}

// Localizer formats catalog messages for one language.
type Localizer struct {
	lang    string
	printer *message.Printer
}

// New returns a localizer for code.
func New(code string) *Localizer {
	lang := Normalize(code)
	return &Localizer{
		lang:    lang,
		printer: message.NewPrinter(language.MustParse(lang), message.Catalog(builder)),
	}
}

// Lang reports the resolved language code.
func (l *Localizer) Lang() string { return l.lang }

// Dir reports the text direction of the language.
func (l *Localizer) Dir() string { return Direction(l.lang) }

// T formats the message registered under key.
func (l *Localizer) T(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

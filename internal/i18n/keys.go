// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"
	KeyWarning = "warning"
	KeyInfo    = "info"

	// Authentication / authorization
	KeyAuthRequired      = "auth.required"
	KeyAuthInvalidToken  = "auth.invalid_token"
	KeyAuthTokenExpired  = "auth.token_expired"
	KeyAdminAccessDenied = "auth.admin_access_denied"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Data interchange
	KeyDataImportSuccess   = "data.import_success"
	KeyDataImportWarnings  = "data.import_warnings"
	KeyDataImportError     = "data.import_error"
	KeyDataUnknownSheet    = "data.unknown_sheet"
	KeyDataNoData          = "data.no_data"
	KeyDataNoValidRows     = "data.no_valid_rows"
	KeyDataExportSuccess   = "data.export_success"
	KeyDataExportError     = "data.export_error"
	KeyDataPDFSuccess      = "data.pdf_success"
	KeyDataTemplateSuccess = "data.template_success"
	KeyDataNoSelection     = "data.no_selection"
	KeyDataBackupSuccess   = "data.backup_success"
	KeyDataRestoreSuccess  = "data.restore_success"
	KeyDataRestoreWarnings = "data.restore_warnings"
	KeyDataRestoreError    = "data.restore_error"
	KeyDataInvalidFile     = "data.invalid_file"

	// Products
	KeyProductCreated  = "product.created"
	KeyProductUpdated  = "product.updated"
	KeyProductDeleted  = "product.deleted"
	KeyProductNotFound = "product.not_found"

	// Storage locations
	KeyLocationCreated  = "location.created"
	KeyLocationUpdated  = "location.updated"
	KeyLocationDeleted  = "location.deleted"
	KeyLocationNotFound = "location.not_found"

	// Invoices
	KeyInvoiceCreated  = "invoice.created"
	KeyInvoiceUpdated  = "invoice.updated"
	KeyInvoiceDeleted  = "invoice.deleted"
	KeyInvoiceNotFound = "invoice.not_found"
	KeyInvoiceUploaded = "invoice.document_uploaded"

	// Stock movements
	KeyEntryCreated     = "entry.created"
	KeyEntryDeleted     = "entry.deleted"
	KeyEntryNotFound    = "entry.not_found"
	KeyExitCreated      = "exit.created"
	KeyExitDeleted      = "exit.deleted"
	KeyExitNotFound     = "exit.not_found"
	KeyExitInsufficient = "exit.insufficient_stock"

	// Shopping list
	KeyShoppingCreated  = "shopping.created"
	KeyShoppingUpdated  = "shopping.updated"
	KeyShoppingDeleted  = "shopping.deleted"
	KeyShoppingNotFound = "shopping.not_found"

	// Organization settings
	KeyOrganizationUpdated = "organization.updated"

	// Reports
	KeyReportUnknown = "report.unknown"
	KeyReportEmpty   = "report.empty"

	// Notifications
	KeyNotificationNotFound = "notification.not_found"
)

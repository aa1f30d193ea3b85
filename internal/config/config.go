// =============================================================================
// Invoice Generator - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the application
// configuration. A single Settings value binds all names the pipeline needs:
//   - File and directory locations (input dataset, templates, output root)
//   - Sheet names (input tab, template tab)
//   - Input column names (group key, client type, item fields, extras)
//   - Template cell addresses (header cells, item table layout)
//   - Processing limits (max items per invoice, invoice explosion guard)
//
// ARCHITECTURE:
//   The Settings struct is resolved once at startup from a YAML file and is
//   never mutated afterwards. It is passed explicitly into every component;
//   no core package reads configuration from globals or the environment.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// SETTINGS STRUCTURE
// =============================================================================

// Settings holds the full application configuration.
// This is loaded from the config.yaml file.
type Settings struct {
	// =========================================================================
	// FILES AND DIRECTORIES
	// =========================================================================

	// InputFile is the path to the spreadsheet export of billing transactions.
	// Default: "./input/dados.xlsx"
	InputFile string `yaml:"input_file"`

	// TemplatePF is the invoice template used for natural-person (PF) clients.
	// Default: "./templates/fatura_pf.xlsx"
	TemplatePF string `yaml:"template_pf"`

	// TemplatePJ is the invoice template used for legal-entity (PJ) clients.
	// Default: "./templates/fatura_pj.xlsx"
	TemplatePJ string `yaml:"template_pj"`

	// OutputDir is the root directory where per-invoice folders are created.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// =========================================================================
	// SHEET NAMES
	// =========================================================================

	// SheetInput is the tab of the input workbook holding the transactions.
	// Default: "Dados"
	SheetInput string `yaml:"sheet_input"`

	// SheetTemplate is the tab of both template workbooks that gets filled.
	// Default: "Fatura"
	SheetTemplate string `yaml:"sheet_template"`

	// =========================================================================
	// CONTROL COLUMNS
	// =========================================================================

	// GroupByColumn identifies which client a row belongs to. One invoice is
	// produced per distinct value of this column.
	// Default: "documento_cliente"
	GroupByColumn string `yaml:"group_by_column"`

	// ClientTypeColumn holds the PF/PJ classification of the row's client.
	// Default: "tipo_cliente"
	ClientTypeColumn string `yaml:"client_type_column"`

	// ClientNameColumn holds the client's display name.
	// Default: "nome_cliente"
	ClientNameColumn string `yaml:"client_name_column"`

	// =========================================================================
	// ITEM COLUMNS
	// =========================================================================

	// ItemDescColumn is the composed line description column.
	// Default: "descricao"
	ItemDescColumn string `yaml:"item_desc_column"`

	// ItemQtyColumn is the quantity column used by the row transformer.
	// Default: "quantidade"
	ItemQtyColumn string `yaml:"item_qty_column"`

	// ItemUnitColumn is the unit-value column used by the row transformer.
	// Default: "valor_unitario"
	ItemUnitColumn string `yaml:"item_unit_column"`

	// ItemTotalColumn is the derived per-row total (quantity x unit value).
	// Default: "valor_total"
	ItemTotalColumn string `yaml:"item_total_column"`

	// EstablishmentColumn names the merchant for the purchase.
	// Default: "estabelecimento"
	EstablishmentColumn string `yaml:"establishment_column"`

	// PurchaseValueColumn is the original purchase amount.
	// Default: "valor_compra"
	PurchaseValueColumn string `yaml:"purchase_value_column"`

	// InstallmentCountColumn is the number of installments for the purchase.
	// Default: "qtd_parcelas"
	InstallmentCountColumn string `yaml:"installment_count_column"`

	// InstallmentValueColumn is the value of a single installment. Line items
	// carry this value, not the transformer's computed row total.
	// Default: "valor_parcela"
	InstallmentValueColumn string `yaml:"installment_value_column"`

	// =========================================================================
	// EXTRA HEADER COLUMNS
	// =========================================================================

	// MonthRefColumn holds the invoice reference month.
	// Default: "mes_fatura"
	MonthRefColumn string `yaml:"month_ref_column"`

	// CardNumberColumn holds the (masked) card number.
	// Default: "numero_cartao"
	CardNumberColumn string `yaml:"card_number_column"`

	// MonthlySumColumn optionally carries a precomputed monthly total. When
	// the column is absent from the dataset the header deriver falls back to
	// summing the per-row totals.
	// Default: "soma_total_mensal"
	MonthlySumColumn string `yaml:"monthly_sum_column"`

	// =========================================================================
	// TEMPLATE CELL ADDRESSES
	// =========================================================================

	// CellDoc receives the client document id. Default: "B6"
	CellDoc string `yaml:"cell_doc"`

	// CellName receives the client name. Default: "B7"
	CellName string `yaml:"cell_name"`

	// CellDate receives the issue date. Default: "B8"
	CellDate string `yaml:"cell_date"`

	// CellTotal receives the invoice total. Default: "H25"
	CellTotal string `yaml:"cell_total"`

	// CellMonthRef receives the reference month. Default: "D6"
	CellMonthRef string `yaml:"cell_month_ref"`

	// CellCardNumber receives the card number. Default: "D7"
	CellCardNumber string `yaml:"cell_card_number"`

	// CellMonthlySum receives the monthly total. Default: "D8"
	CellMonthlySum string `yaml:"cell_monthly_sum"`

	// =========================================================================
	// ITEM TABLE LAYOUT
	// =========================================================================

	// ItemsStartRow is the first row of the template's item table.
	// Default: 12
	ItemsStartRow int `yaml:"items_start_row"`

	// ColItemDesc is the column letter for item descriptions. Default: "B"
	ColItemDesc string `yaml:"col_item_desc"`

	// ColItemQty is the column letter for item quantities. Default: "F"
	ColItemQty string `yaml:"col_item_qty"`

	// ColItemUnit is the column letter for item unit values. Default: "G"
	ColItemUnit string `yaml:"col_item_unit"`

	// ColItemTotal is the column letter for item total values. Default: "H"
	ColItemTotal string `yaml:"col_item_total"`

	// MaxItems caps the number of line items written per invoice. Rows beyond
	// the cap are dropped; the per-invoice result reports how many.
	// Default: 40
	MaxItems int `yaml:"max_items"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxInvoices is the explosion guard: preflight fails when the dataset
	// would produce more distinct invoices than this.
	// Default: 5000
	MaxInvoices int `yaml:"max_invoices"`

	// SkipPDFExport disables the per-invoice PDF export step. By default
	// every filled invoice is exported; export failures are recorded per
	// invoice and never abort the run.
	// Default: false
	SkipPDFExport bool `yaml:"skip_pdf_export"`

	// PrintInvoices enables sending each filled invoice to the default
	// printer. Same failure isolation as the PDF export.
	// Default: false
	PrintInvoices bool `yaml:"print_invoices"`
}

// =============================================================================
// LOADING
// =============================================================================

// LoadSettings loads the application settings from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//
// RETURNS:
//   - A pointer to the Settings struct with defaults applied.
//   - An error if the file cannot be read or parsed, or if a value the
//     pipeline cannot work with survives defaulting.
func LoadSettings(configPath string) (*Settings, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&settings)

	if err := validate(&settings); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &settings, nil
}

// DefaultSettings returns a Settings value with every default applied.
// Useful for tests and for running without a config file.
func DefaultSettings() *Settings {
	settings := &Settings{}
	applyDefaults(settings)
	return settings
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(s *Settings) {
	if s.InputFile == "" {
		s.InputFile = "./input/dados.xlsx"
	}
	if s.TemplatePF == "" {
		s.TemplatePF = "./templates/fatura_pf.xlsx"
	}
	if s.TemplatePJ == "" {
		s.TemplatePJ = "./templates/fatura_pj.xlsx"
	}
	if s.OutputDir == "" {
		s.OutputDir = "./output"
	}
	if s.SheetInput == "" {
		s.SheetInput = "Dados"
	}
	if s.SheetTemplate == "" {
		s.SheetTemplate = "Fatura"
	}
	if s.GroupByColumn == "" {
		s.GroupByColumn = "documento_cliente"
	}
	if s.ClientTypeColumn == "" {
		s.ClientTypeColumn = "tipo_cliente"
	}
	if s.ClientNameColumn == "" {
		s.ClientNameColumn = "nome_cliente"
	}
	if s.ItemDescColumn == "" {
		s.ItemDescColumn = "descricao"
	}
	if s.ItemQtyColumn == "" {
		s.ItemQtyColumn = "quantidade"
	}
	if s.ItemUnitColumn == "" {
		s.ItemUnitColumn = "valor_unitario"
	}
	if s.ItemTotalColumn == "" {
		s.ItemTotalColumn = "valor_total"
	}
	if s.EstablishmentColumn == "" {
		s.EstablishmentColumn = "estabelecimento"
	}
	if s.PurchaseValueColumn == "" {
		s.PurchaseValueColumn = "valor_compra"
	}
	if s.InstallmentCountColumn == "" {
		s.InstallmentCountColumn = "qtd_parcelas"
	}
	if s.InstallmentValueColumn == "" {
		s.InstallmentValueColumn = "valor_parcela"
	}
	if s.MonthRefColumn == "" {
		s.MonthRefColumn = "mes_fatura"
	}
	if s.CardNumberColumn == "" {
		s.CardNumberColumn = "numero_cartao"
	}
	if s.MonthlySumColumn == "" {
		s.MonthlySumColumn = "soma_total_mensal"
	}
	if s.CellDoc == "" {
		s.CellDoc = "B6"
	}
	if s.CellName == "" {
		s.CellName = "B7"
	}
	if s.CellDate == "" {
		s.CellDate = "B8"
	}
	if s.CellTotal == "" {
		s.CellTotal = "H25"
	}
	if s.CellMonthRef == "" {
		s.CellMonthRef = "D6"
	}
	if s.CellCardNumber == "" {
		s.CellCardNumber = "D7"
	}
	if s.CellMonthlySum == "" {
		s.CellMonthlySum = "D8"
	}
	if s.ItemsStartRow == 0 {
		s.ItemsStartRow = 12
	}
	if s.ColItemDesc == "" {
		s.ColItemDesc = "B"
	}
	if s.ColItemQty == "" {
		s.ColItemQty = "F"
	}
	if s.ColItemUnit == "" {
		s.ColItemUnit = "G"
	}
	if s.ColItemTotal == "" {
		s.ColItemTotal = "H"
	}
	if s.MaxItems == 0 {
		s.MaxItems = 40
	}
	if s.MaxInvoices == 0 {
		s.MaxInvoices = 5000
	}

	// Column names are matched against normalized dataset headers, so the
	// configured names must be canonical too.
	s.GroupByColumn = canonical(s.GroupByColumn)
	s.ClientTypeColumn = canonical(s.ClientTypeColumn)
	s.ClientNameColumn = canonical(s.ClientNameColumn)
	s.ItemDescColumn = canonical(s.ItemDescColumn)
	s.ItemQtyColumn = canonical(s.ItemQtyColumn)
	s.ItemUnitColumn = canonical(s.ItemUnitColumn)
	s.ItemTotalColumn = canonical(s.ItemTotalColumn)
	s.EstablishmentColumn = canonical(s.EstablishmentColumn)
	s.PurchaseValueColumn = canonical(s.PurchaseValueColumn)
	s.InstallmentCountColumn = canonical(s.InstallmentCountColumn)
	s.InstallmentValueColumn = canonical(s.InstallmentValueColumn)
	s.MonthRefColumn = canonical(s.MonthRefColumn)
	s.CardNumberColumn = canonical(s.CardNumberColumn)
	s.MonthlySumColumn = canonical(s.MonthlySumColumn)
}

// canonical normalizes a configured column name the same way dataset headers
// are normalized: trimmed and lower-cased.
func canonical(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// validate checks the configuration for values the pipeline cannot work with.
// File existence is deliberately not checked here; that is preflight's job,
// with its own error classes and messages.
func validate(s *Settings) error {
	if s.MaxItems < 1 {
		return fmt.Errorf("max_items must be at least 1, got %d", s.MaxItems)
	}
	if s.ItemsStartRow < 1 {
		return fmt.Errorf("items_start_row must be at least 1, got %d", s.ItemsStartRow)
	}
	if s.MaxInvoices < 1 {
		return fmt.Errorf("max_invoices must be at least 1, got %d", s.MaxInvoices)
	}
	return nil
}

// TemplateForType returns the template path for a normalized client type
// string ("PF" or "PJ"). The second return is false for any other value.
func (s *Settings) TemplateForType(clientType string) (string, bool) {
	switch clientType {
	case "PF":
		return s.TemplatePF, true
	case "PJ":
		return s.TemplatePJ, true
	default:
		return "", false
	}
}

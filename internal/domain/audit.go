// internal/domain/audit.go
package domain

// CategoryStatusPendente is the initial audit status every category starts
// in; the front end advances it as counting progresses.
const CategoryStatusPendente = "pendente"

// AuditProduct is a leaf of the audit tree: one on-hand product inside a
// category. Code is the barcode when present, else the ERP product code.
type AuditProduct struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

// AuditCategory groups products inside a department. Its ID is the composite
// "{groupID}-{deptID}-{categoryCode or name}", which keeps same-named
// categories under different departments distinct.
type AuditCategory struct {
	ID            string         `json:"id"`
	NumericID     *string        `json:"numericId"`
	Name          string         `json:"name"`
	ItemsCount    int            `json:"itemsCount"`
	TotalQuantity float64        `json:"totalQuantity"`
	Status        string         `json:"status"`
	Products      []AuditProduct `json:"products"`
}

// AuditDepartment groups categories inside a group.
type AuditDepartment struct {
	ID         string           `json:"id"`
	NumericID  *string          `json:"numericId"`
	Name       string           `json:"name"`
	Categories []*AuditCategory `json:"categories"`
}

// AuditGroup is the top level of the audit tree.
type AuditGroup struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Departments []*AuditDepartment `json:"departments"`
}

// AuditPayload is the bootstrap document the audit front end renders: every
// group with on-hand stock, labelled with the company/branch pair it was
// requested for.
type AuditPayload struct {
	Groups  []*AuditGroup `json:"groups"`
	Empresa string        `json:"empresa"`
	Filial  string        `json:"filial"`
}

// Package audit builds the stock-audit bootstrap payload: it reshapes the
// flat Trier product and stock streams into the group → department →
// category → product tree the audit front end renders.
package audit

import (
	"context"
	"fmt"
	"sort"

	"github.com/farmaponte/trier-integration/internal/domain"
	"github.com/farmaponte/trier-integration/internal/trier"
)

// FetchFunc returns every record of one Trier list endpoint, fully drained.
// The aggregator has no network concerns of its own; pagination, auth and
// retries all live behind this function.
type FetchFunc func(ctx context.Context) ([]trier.Record, error)

// BuildPayload assembles the audit tree from the product and stock streams.
// Only products with a resolvable code and stock strictly greater than zero
// are included. Filial and empresa are echoed into the payload untouched.
// The result is a pure function of the fetched records: no caching, no
// shared state between calls.
func BuildPayload(ctx context.Context, fetchProducts, fetchStock FetchFunc, filial, empresa string) (*domain.AuditPayload, error) {
	produtos, err := fetchProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch produtos: %w", err)
	}
	estoques, err := fetchStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch estoques: %w", err)
	}

	stockByCode := buildStockIndex(estoques)
	tree := newTreeBuilder()

	for _, produto := range produtos {
		codigo := toStr(produto["codigo"])
		if codigo == "" {
			continue
		}

		quantidade := toFloat(stockByCode[codigo]["quantidadeEstoque"])
		if quantidade <= 0 {
			continue
		}

		groupID := toStr(produto["codigoGrupo"])
		if groupID == "" {
			groupID = "0"
		}
		groupName := toStr(produto["nomeGrupo"])
		if groupName == "" {
			groupName = "Grupo " + groupID
		}

		deptCode := toStr(produto["codigoDepartamento"])
		deptName := toStr(produto["nomeDepartamento"])
		if deptName == "" {
			deptName = "GERAL"
		}
		deptID := deptCode
		if deptID == "" {
			deptID = deptName
		}

		catCode := toStr(produto["codigoCategoria"])
		catName := toStr(produto["nomeCategoria"])
		if catName == "" {
			catName = "GERAL"
		}
		catKey := catCode
		if catKey == "" {
			catKey = catName
		}
		catID := fmt.Sprintf("%s-%s-%s", groupID, deptID, catKey)

		group := tree.group(groupID, groupName)
		dept := tree.department(group, deptID, deptName, deptCode)
		cat := tree.category(dept, catID, catName, catCode)

		productCode := toStr(produto["codigoBarras"])
		if productCode == "" {
			productCode = codigo
		}
		productName := toStr(produto["nome"])
		if productName == "" {
			productName = "Produto " + codigo
		}

		cat.Products = append(cat.Products, domain.AuditProduct{
			Code:     productCode,
			Name:     productName,
			Quantity: quantidade,
		})
		cat.ItemsCount++
		cat.TotalQuantity += quantidade
	}

	return &domain.AuditPayload{
		Groups:  tree.sortedGroups(),
		Empresa: empresa,
		Filial:  filial,
	}, nil
}

// buildStockIndex keys the stock stream by trimmed product code. Duplicate
// codes are last-write-wins; records without a code are dropped.
func buildStockIndex(records []trier.Record) map[string]trier.Record {
	index := make(map[string]trier.Record, len(records))
	for _, record := range records {
		if codigo := toStr(record["codigoProduto"]); codigo != "" {
			index[codigo] = record
		}
	}
	return index
}

// treeBuilder keeps a find-or-create index at every tree level so insertion
// stays linear in the number of products. Insertion order is preserved;
// category ids already embed group and department, so a flat index suffices.
type treeBuilder struct {
	groups     []*domain.AuditGroup
	groupIndex map[string]*domain.AuditGroup
	deptIndex  map[string]*domain.AuditDepartment
	catIndex   map[string]*domain.AuditCategory
}

func newTreeBuilder() *treeBuilder {
	return &treeBuilder{
		groupIndex: make(map[string]*domain.AuditGroup),
		deptIndex:  make(map[string]*domain.AuditDepartment),
		catIndex:   make(map[string]*domain.AuditCategory),
	}
}

func (b *treeBuilder) group(id, name string) *domain.AuditGroup {
	if group, ok := b.groupIndex[id]; ok {
		return group
	}
	group := &domain.AuditGroup{
		ID:          id,
		Name:        name,
		Departments: []*domain.AuditDepartment{},
	}
	b.groupIndex[id] = group
	b.groups = append(b.groups, group)
	return group
}

func (b *treeBuilder) department(group *domain.AuditGroup, id, name, code string) *domain.AuditDepartment {
	key := group.ID + "\x00" + id
	if dept, ok := b.deptIndex[key]; ok {
		return dept
	}
	dept := &domain.AuditDepartment{
		ID:         id,
		NumericID:  optional(code),
		Name:       name,
		Categories: []*domain.AuditCategory{},
	}
	b.deptIndex[key] = dept
	group.Departments = append(group.Departments, dept)
	return dept
}

func (b *treeBuilder) category(dept *domain.AuditDepartment, id, name, code string) *domain.AuditCategory {
	if cat, ok := b.catIndex[id]; ok {
		return cat
	}
	cat := &domain.AuditCategory{
		ID:        id,
		NumericID: optional(code),
		Name:      name,
		Status:    domain.CategoryStatusPendente,
		Products:  []domain.AuditProduct{},
	}
	b.catIndex[id] = cat
	dept.Categories = append(dept.Categories, cat)
	return cat
}

// sortedGroups orders groups ascending by the numeric value of their id,
// keeping first-seen order for ties.
func (b *treeBuilder) sortedGroups() []*domain.AuditGroup {
	groups := b.groups
	if groups == nil {
		groups = []*domain.AuditGroup{}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groupSortKey(groups[i].ID) < groupSortKey(groups[j].ID)
	})
	return groups
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

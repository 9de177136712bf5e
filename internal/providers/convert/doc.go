// Package convert implements the converter panels: length and weight scale
// tables, the three temperature formulas, and currency conversion through a
// USD pivot with editable rates.
//
// Length and weight convert value × factor[from] / factor[to] through a base
// unit (meter and kilogram). An unknown unit code has factor 1, so it acts
// as the base unit. Currency rates are "units per USD"; USD itself is fixed
// at 1.
//
// Provider exposes all of it as service tools (convert.*).
package convert

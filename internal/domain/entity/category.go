package entity

// Category tipo de producto (conjunto cerrado).
type Category string

const (
	CategoryFruitsVegetables Category = "Frutas y verduras"
	CategoryDairy            Category = "Lácteos"
	CategoryMeatProtein      Category = "Carnes y proteínas"
	CategoryBakery           Category = "Panadería"
	CategoryCereals          Category = "Cereales y granos"
	CategoryCanned           Category = "Conservas y productos secos"
	CategorySpices           Category = "Condimentos y especias"
	CategoryBeverages        Category = "Bebidas"
	CategoryFrozen           Category = "Congelados"
	CategorySnacks           Category = "Snacks y confitería"
	CategoryNonFood          Category = "Productos no alimenticios"
)

// Categories devuelve las categorías válidas en orden de presentación.
func Categories() []Category {
	return []Category{
		CategoryFruitsVegetables,
		CategoryDairy,
		CategoryMeatProtein,
		CategoryBakery,
		CategoryCereals,
		CategoryCanned,
		CategorySpices,
		CategoryBeverages,
		CategoryFrozen,
		CategorySnacks,
		CategoryNonFood,
	}
}

// Valid indica si c pertenece al conjunto de categorías.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

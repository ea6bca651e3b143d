package repository

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page       int
	PageSize   int
	CategoryID uint
	Search     string
	Sort       string
	OnlyActive bool
}

// PostListFilter 查询动态列表的过滤条件
type PostListFilter struct {
	Page          int
	PageSize      int
	UserID        uint
	OnlyPublished bool
}

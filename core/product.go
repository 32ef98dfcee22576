package core

// ProductFeatures 是商品在特征索引中的画像：三个类目维度 + 两个数值维度。
// 类目维度（Category/Metal/Purity）做精确匹配，大小写敏感，缺失为空串；
// 数值维度（Price/Weight）非负，缺失为 0。
type ProductFeatures struct {
	ProductID string
	Category  string // 品类：Ring / Necklace / Bangle ...
	Metal     string // 材质：Gold / Silver / Platinum ...
	Purity    string // 纯度：22k / 18k / 92.5 ...
	Price     float64
	Weight    float64 // 克重
}

// CatalogItem 是商品目录协作方返回的商品记录。
// 除特征字段外还带展示信息（Name/Image），用于直接组装推荐结果。
type CatalogItem struct {
	ID       string  `json:"id"`
	Category string  `json:"category"`
	Metal    string  `json:"metal"`
	Purity   string  `json:"purity"`
	Price    float64 `json:"price"`
	Weight   float64 `json:"weight"`
	Name     string  `json:"name"`
	Image    string  `json:"image"`
}

// Features 将目录记录转为特征记录，缺失字段保持零值语义。
func (c CatalogItem) Features() ProductFeatures {
	return ProductFeatures{
		ProductID: c.ID,
		Category:  c.Category,
		Metal:     c.Metal,
		Purity:    c.Purity,
		Price:     c.Price,
		Weight:    c.Weight,
	}
}

// Recommendation 是引擎的输出记录。
// Score 是加权相似度（冷启动兜底的热门结果没有相似度，Score 为 0）。
type Recommendation struct {
	ProductID string  `json:"productId"`
	Score     float64 `json:"similarityScore"`
	Name      string  `json:"name"`
	Image     string  `json:"image,omitempty"`
	Price     float64 `json:"price,omitempty"`
}

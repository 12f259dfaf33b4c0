package pricelist

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// ==================== 价格表文档结构 ====================

// Feed 店铺价格表文档 (YAML)
// 约定格式:
//
//	shop: 连接店1
//	categories:
//	  - id: 224
//	    name: Смартфоны
//	goods:
//	  - id: 4216292
//	    category: 224
//	    model: apple/iphone/xs-max
//	    name: Смартфон Apple iPhone XS Max 512GB (золотистый)
//	    price: 110000
//	    price_rrc: 116990
//	    quantity: 14
//	    parameters:
//	      "Диагональ (дюйм)": 6.5
type Feed struct {
	Shop       string     `yaml:"shop"`
	Categories []Category `yaml:"categories"`
	Goods      []Good     `yaml:"goods"`
}

// Category 价格表中的品类行，id 为跨店铺稳定的字典键
type Category struct {
	ID   int64  `yaml:"id"`
	Name string `yaml:"name"`
}

// Good 价格表中的商品行
// 参数值在源文档里可能是数字或布尔，统一以 interface{} 接住，入库前转字符串
type Good struct {
	ID         int64                  `yaml:"id"`
	Category   int64                  `yaml:"category"`
	Model      string                 `yaml:"model"`
	Name       string                 `yaml:"name"`
	Price      int                    `yaml:"price"`
	PriceRRC   int                    `yaml:"price_rrc"`
	Quantity   int                    `yaml:"quantity"`
	Parameters map[string]interface{} `yaml:"parameters"`
}

// ==================== 解析与校验 ====================

// Parse 解析价格表文档
func Parse(data []byte) (*Feed, error) {
	var feed Feed
	if err := yaml.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("价格表不是合法的 YAML: %w", err)
	}
	if err := feed.Validate(); err != nil {
		return nil, err
	}
	return &feed, nil
}

// Validate 结构校验：店铺名必填、品类引用闭合、数值非负
// 这里只做文档自身的一致性检查，数据库层面的约束由导入事务兜底
func (f *Feed) Validate() error {
	if f.Shop == "" {
		return fmt.Errorf("价格表缺少 shop 字段")
	}

	categoryIDs := make(map[int64]struct{}, len(f.Categories))
	for _, c := range f.Categories {
		if c.ID <= 0 {
			return fmt.Errorf("品类 %q 的 id 非法: %d", c.Name, c.ID)
		}
		if c.Name == "" {
			return fmt.Errorf("品类 %d 缺少名称", c.ID)
		}
		categoryIDs[c.ID] = struct{}{}
	}

	for _, g := range f.Goods {
		if g.Name == "" {
			return fmt.Errorf("商品 %d 缺少名称", g.ID)
		}
		// 商品引用的品类必须出现在本文档的 categories 列表里
		if _, ok := categoryIDs[g.Category]; !ok {
			return fmt.Errorf("商品 %q 引用了未声明的品类 %d", g.Name, g.Category)
		}
		if g.Price < 0 || g.PriceRRC < 0 || g.Quantity < 0 {
			return fmt.Errorf("商品 %q 的价格/库存不能为负", g.Name)
		}
	}
	return nil
}

package mysql

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UserModel GORM用户模型
// domain/user/entity.go是领域实体，不依赖GORM，Repository负责两者转换
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	Email     string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Nickname  string         `gorm:"size:50;not null;comment:昵称"`
	IsStaff   bool           `gorm:"not null;comment:是否后台管理员"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

func (UserModel) TableName() string {
	return "users"
}

// CategoryModel 商品分类
type CategoryModel struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:100;not null;comment:分类名称"`
	Slug        string    `gorm:"uniqueIndex;size:120;not null"`
	Description string    `gorm:"type:text"`
	Image       string    `gorm:"size:500;comment:分类图片URL"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
}

func (CategoryModel) TableName() string {
	return "categories"
}

// ProductModel 商品
// 设计说明:
// 1. 价格使用decimal(10,2)存储,避免浮点误差
// 2. is_active不设数据库默认值,否则GORM会把false当作零值跳过
// 3. 软删除,已下单的明细通过快照字段展示
type ProductModel struct {
	ID                 uint            `gorm:"primaryKey"`
	CategoryID         uint            `gorm:"index;not null;comment:分类ID"`
	Category           *CategoryModel  `gorm:"foreignKey:CategoryID"`
	Name               string          `gorm:"index:idx_search;size:200;not null;comment:商品名称"`
	Slug               string          `gorm:"uniqueIndex;size:220;not null"`
	Description        string          `gorm:"type:text;comment:商品描述"`
	Price              decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:原价"`
	DiscountPercentage int             `gorm:"not null;default:0;comment:折扣百分比(0-100)"`
	Image              string          `gorm:"size:500"`
	Image2             string          `gorm:"column:image_2;size:500"`
	Image3             string          `gorm:"column:image_3;size:500"`
	UzumLink           string          `gorm:"size:500;comment:Uzum Market链接"`
	YandexMarketLink   string          `gorm:"size:500;comment:Yandex Market链接"`
	IsFeatured         bool            `gorm:"index;not null"`
	IsActive           bool            `gorm:"index;not null"`
	CreatedAt          time.Time       `gorm:"index;comment:创建时间"`
	UpdatedAt          time.Time       `gorm:"comment:更新时间"`
	DeletedAt          gorm.DeletedAt  `gorm:"index"`
}

func (ProductModel) TableName() string {
	return "products"
}

// CartModel 购物车,每个用户一个(user_id唯一)
type CartModel struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"uniqueIndex;not null;comment:用户ID"`
	Items     []CartItemModel `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CartModel) TableName() string {
	return "carts"
}

// CartItemModel 购物车明细,同一购物车中商品唯一
type CartItemModel struct {
	ID        uint          `gorm:"primaryKey"`
	CartID    uint          `gorm:"uniqueIndex:idx_cart_product;not null"`
	ProductID uint          `gorm:"uniqueIndex:idx_cart_product;index;not null"`
	Product   *ProductModel `gorm:"foreignKey:ProductID"`
	Quantity  int           `gorm:"not null;comment:数量(1-99)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CartItemModel) TableName() string {
	return "cart_items"
}

// OrderModel 订单
// 1. 与OrderItemModel是一对多关系
// 2. total_price在创建时冻结
// 3. status使用字符串存储,与API取值一致
type OrderModel struct {
	ID         uint             `gorm:"primaryKey"`
	UserID     uint             `gorm:"index;not null;comment:用户ID"`
	FullName   string           `gorm:"size:200;not null"`
	Phone      string           `gorm:"size:20;not null"`
	Email      string           `gorm:"size:254;not null"`
	Address    string           `gorm:"size:500;not null"`
	City       string           `gorm:"size:100;not null"`
	PostalCode string           `gorm:"size:20"`
	TotalPrice decimal.Decimal  `gorm:"type:decimal(12,2);not null;comment:订单总金额"`
	Status     string           `gorm:"index;size:20;not null;comment:订单状态"`
	Notes      string           `gorm:"type:text"`
	Items      []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time        `gorm:"index;comment:创建时间"`
	UpdatedAt  time.Time        `gorm:"comment:更新时间"`
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel 订单明细
// Price和ProductName是下单时的快照,不关联products表
type OrderItemModel struct {
	ID          uint            `gorm:"primaryKey"`
	OrderID     uint            `gorm:"index;not null;comment:订单ID"`
	ProductID   uint            `gorm:"index;not null;comment:商品ID"`
	ProductName string          `gorm:"size:200;not null;comment:下单时商品名称"`
	Quantity    int             `gorm:"not null;comment:购买数量"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:下单时折后单价"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}

// ContactMessageModel 联系留言
type ContactMessageModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:100;not null"`
	Email     string    `gorm:"size:254"`
	Phone     string    `gorm:"size:20;not null"`
	Message   string    `gorm:"type:text;not null"`
	IsRead    bool      `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"index"`
}

func (ContactMessageModel) TableName() string {
	return "contact_messages"
}

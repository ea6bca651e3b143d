package models

import (
	"time"

	"gorm.io/gorm"
)

// Post 穿搭分享/动态表
type Post struct {
	ID          uint           `gorm:"primarykey" json:"id"`                    // 主键
	UserID      uint           `gorm:"index;not null" json:"user_id"`           // 作者ID
	Title       string         `gorm:"not null" json:"title"`                   // 标题
	Content     string         `gorm:"type:text" json:"content"`                // 正文
	ImageURL    string         `json:"image_url"`                               // 配图地址
	IsPublished bool           `gorm:"default:true;index" json:"is_published"`  // 是否发布
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                 // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                              // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除时间

	// 关联
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Post) TableName() string {
	return "posts"
}

package model

import (
	"time"

	"gorm.io/gorm"
)

// User 用户模型（仅保留项目核心需要的字段）
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	Name  string   `json:"name" gorm:"not null"`
	Email string   `json:"email" gorm:"uniqueIndex;not null"`
	Role  UserRole `json:"role" gorm:"default:'client'"`
}

// UserRole 用户角色
type UserRole string

const (
	UserRoleClient UserRole = "client" // 客户
	UserRoleEditor UserRole = "editor" // 剪辑师
	UserRoleAdmin  UserRole = "admin"  // 管理员
)

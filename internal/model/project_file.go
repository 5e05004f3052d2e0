package model

import (
	"time"

	"gorm.io/gorm"
)

// ProjectFile 项目文件记录（文件内容的存取由上传模块负责，这里只记录元数据）
type ProjectFile struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	ProjectID  uint     `json:"project_id" gorm:"not null;index"`
	UploaderID uint     `json:"uploader_id" gorm:"not null"`
	FileName   string   `json:"file_name" gorm:"not null"`
	FilePath   string   `json:"file_path"`
	FileType   FileType `json:"file_type" gorm:"default:'draft'"`
	Approved   bool     `json:"approved" gorm:"default:false"`
}

// FileType 文件类型
type FileType string

const (
	FileTypeDraft     FileType = "draft"     // 草稿版本
	FileTypeFinal     FileType = "final"     // 最终成片
	FileTypeReference FileType = "reference" // 参考素材
)

package resource

import "github.com/google/uuid"

// RID 资源实例标识
// 同一文件重复加载出的两个实例拥有不同的 RID
type RID uuid.UUID

// NewRID 生成新的资源标识
func NewRID() RID {
	return RID(uuid.New())
}

// IsValid 零值 RID 无效
func (r RID) IsValid() bool {
	return uuid.UUID(r) != uuid.Nil
}

func (r RID) String() string {
	return uuid.UUID(r).String()
}

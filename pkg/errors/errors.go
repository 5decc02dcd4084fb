package errors

import "errors"

// ── 错误分类 ──
//
// 各业务模块的具体错误通过 fmt.Errorf("...: %w", ErrXxx) 包装这些分类，
// Handler 层只需按分类映射 HTTP 状态码。

var (
	// ErrValidation 参数缺失、格式错误、日期时间解析失败
	ErrValidation = errors.New("参数校验失败")
	// ErrNotFound 引用的实体或所属学生不存在
	ErrNotFound = errors.New("资源不存在")
	// ErrDuplicate 同一实体表中存在完全相同的时间段
	ErrDuplicate = errors.New("记录重复")
	// ErrOverlap 与统一日程中已有条目时间重叠
	ErrOverlap = errors.New("该时间段已被占用，请选择其他时间")
	// ErrForbidden 非本人数据
	ErrForbidden = errors.New("无权操作该资源")
	// ErrIntegrity 底层存储约束冲突
	ErrIntegrity = errors.New("数据完整性约束冲突")
)

// Kind 返回错误所属分类；无法识别时返回 nil（即内部错误）
func Kind(err error) error {
	for _, k := range []error{ErrValidation, ErrNotFound, ErrDuplicate, ErrOverlap, ErrForbidden, ErrIntegrity} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

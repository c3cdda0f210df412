package xlookup

import (
	"encoding/json"
	"strconv"

	"github.com/omeyang/xoui/pkg/oui/xregistry"
)

// PrivateOrganization 是私有地址结果的组织名。
const PrivateOrganization = "Private"

// ResultKind 区分查询结果的三种形态。
type ResultKind int

const (
	// KindNoMatch 表示输入无效或注册表中没有该前缀。
	KindNoMatch ResultKind = iota
	// KindPrivate 表示本地管理（私有）地址，没有厂商。
	KindPrivate
	// KindVendor 表示命中注册表。
	KindVendor
)

// String 返回结果类型的指标/日志标签。
func (k ResultKind) String() string {
	switch k {
	case KindNoMatch:
		return "no_match"
	case KindPrivate:
		return "private"
	case KindVendor:
		return "vendor"
	default:
		return "ResultKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Result 是一次查询的结果。
//
// 只有 KindVendor 结果携带 company_id 与地址，通过 [Result.Vendor] 读取。
// 零值等价于 [NoMatch]。
type Result struct {
	kind   ResultKind
	mac    string
	record xregistry.Record
}

// NoMatch 返回空结果。
func NoMatch() Result {
	return Result{}
}

func privateResult(prefix string) Result {
	return Result{kind: KindPrivate, mac: prefix}
}

func vendorResult(rec xregistry.Record) Result {
	return Result{kind: KindVendor, mac: rec.MAC, record: rec}
}

// Kind 返回结果类型。
func (r Result) Kind() ResultKind {
	return r.kind
}

// MAC 返回大写冒号格式的 3 字节前缀；KindNoMatch 返回空串。
func (r Result) MAC() string {
	return r.mac
}

// Vendor 返回注册表记录，仅 KindVendor 时 ok 为 true。
func (r Result) Vendor() (rec xregistry.Record, ok bool) {
	if r.kind != KindVendor {
		return xregistry.Record{}, false
	}
	return r.record, true
}

// Organization 返回组织名。私有地址为 "Private"，KindNoMatch 为空串。
func (r Result) Organization() string {
	switch r.kind {
	case KindPrivate:
		return PrivateOrganization
	case KindVendor:
		return r.record.Organization
	default:
		return ""
	}
}

// MarshalJSON 按结果类型输出不同字段集：
// KindNoMatch 为 {}，KindPrivate 只有 mac 与 organization，KindVendor 为完整记录。
func (r Result) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case KindPrivate:
		return json.Marshal(struct {
			MAC          string `json:"mac"`
			Organization string `json:"organization"`
		}{r.mac, PrivateOrganization})
	case KindVendor:
		return json.Marshal(r.record)
	default:
		return []byte("{}"), nil
	}
}

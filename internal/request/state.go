package request

// Status 工单状态枚举。状态不单独落库：closed_requests 里有对应行即为 closed。
type Status string

const (
	StatusOpen   Status = "open"   // 已开单，待处理
	StatusClosed Status = "closed" // 已关单（终态）
)

// AllowTransition 工单状态机的允许流转关系。closed 是终态，没有回退。
var AllowTransition = map[Status][]Status{
	StatusOpen:   {StatusClosed},
	StatusClosed: {},
}

// CanTransition 判断 from -> to 是否是一个允许的状态流转。
// 同状态不视为合法流转：对已关单的工单再次关单必须失败。
func CanTransition(from, to Status) bool {
	for _, s := range AllowTransition[from] {
		if s == to {
			return true
		}
	}
	return false
}

// StatusOf 由“是否存在关单行”推导当前状态。
func StatusOf(closed bool) Status {
	if closed {
		return StatusClosed
	}
	return StatusOpen
}

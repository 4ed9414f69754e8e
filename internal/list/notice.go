package list

// NoticeKind tells success from failure.
type NoticeKind int

// Notice kinds.
const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

// Notice describes a completed operation for the user.
type Notice struct {
	Message string
	Op      Op
	Kind    NoticeKind
	ItemID  int
}

// NoticeFunc receives notices. It is called without the controller lock
// held, possibly from a goroutine other than the UI loop.
type NoticeFunc func(Notice)

var successMessages = map[Op]string{
	OpCreate: "Item adicionado com sucesso!",
	OpUpdate: "Item atualizado com sucesso!",
	OpToggle: "Status atualizado!",
	OpDelete: "Item removido com sucesso!",
}

var errorMessages = map[Op]string{
	OpLoad:   "Erro ao carregar itens",
	OpCreate: "Erro ao adicionar item",
	OpUpdate: "Erro ao atualizar item",
	OpToggle: "Erro ao atualizar status",
	OpDelete: "Erro ao remover item",
}

package ast

func (m Mode) String() string {
	switch m {
	case ModeIn:
		return "in"
	case ModeOut:
		return "out"
	case ModeInout:
		return "inout"
	case ModeBuffer:
		return "buffer"
	case ModeLinkage:
		return "linkage"
	default:
		return "<bad-mode>"
	}
}

func (d Dir) String() string {
	switch d {
	case DirTo:
		return "to"
	case DirDownto:
		return "downto"
	default:
		return "<bad-direction>"
	}
}

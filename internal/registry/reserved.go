package registry

// defaultReserved is the fixed set of native keys custom content types
// may never shadow or remove.
var defaultReserved = []string{
	"post",
	"page",
	"attachment",
	"revision",
	"nav_menu_item",
	"custom_css",
	"user_request",
	"block",
}

package keys

// Shared HbbTV/CE-HTML codes used by all three platforms.
var common = map[Key][]int{
	Left:        {37},
	Up:          {38},
	Right:       {39},
	Down:        {40},
	Enter:       {13},
	Red:         {403},
	Green:       {404},
	Yellow:      {405},
	Blue:        {406},
	Play:        {415},
	Pause:       {19},
	PlayPause:   {10252},
	Stop:        {413},
	FastForward: {417},
	Rewind:      {412},
	ChannelUp:   {427},
	ChannelDown: {428},
	Info:        {457},
}

func withCommon(extra map[Key][]int) map[Key][]int {
	t := make(map[Key][]int, len(common)+len(extra))
	for k, v := range common {
		t[k] = v
	}
	for k, v := range extra {
		t[k] = v
	}
	return t
}

// Samsung is the Tizen remote table.
var Samsung = mustMap("samsung", withCommon(map[Key][]int{
	Return: {10009},
	Exit:   {10182},
}))

// LG is the webOS remote table. The Magic Remote back button is 461.
var LG = mustMap("lg", withCommon(map[Key][]int{
	Return: {461},
	Exit:   {1001},
}))

// Web is the desktop browser table. Back accepts Backspace and the TV back
// codes so the same build works when a TV browser loads the web variant.
var Web = mustMap("web", withCommon(map[Key][]int{
	Return: {8, 10009, 461},
	Exit:   {27},
}))

// ForPlatform returns the built-in map for a platform name, falling back
// to Web.
func ForPlatform(name string) *Map {
	switch name {
	case "samsung":
		return Samsung
	case "lg":
		return LG
	default:
		return Web
	}
}

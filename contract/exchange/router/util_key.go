package router

var (
	tagFactory = byte(0x01)
	tagWETH    = byte(0x02)
)

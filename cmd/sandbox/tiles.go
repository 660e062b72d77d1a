package main

// Demo maps, row-major, mapColumns tiles per row. Index 0 is the empty tile.
const mapColumns = 15

var groundTiles = []int{
	178, 100, 101, 102, 103, 98, 99, 102, 343, 138, 139, 140, 140, 140, 140,
	194, 0, 0, 0, 0, 0, 0, 0, 359, 343, 156, 153, 140, 140, 140,
	129, 0, 0, 0, 0, 0, 0, 0, 0, 359, 343, 159, 141, 140, 140,
	145, 0, 0, 0, 0, 0, 0, 0, 0, 0, 359, 343, 157, 155, 140,
	161, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 359, 180, 137, 140,
	177, 0, 0, 0, 266, 0, 0, 0, 0, 0, 0, 0, 160, 152, 140,
	97, 0, 0, 0, 282, 0, 0, 0, 0, 0, 0, 0, 176, 158, 136,
	113, 0, 0, 0, 298, 0, 0, 0, 0, 0, 0, 0, 162, 98, 99,
	210, 118, 119, 131, 116, 117, 114, 115, 105, 0, 0, 0, 0, 0, 0,
	142, 152, 136, 138, 139, 153, 137, 143, 121, 118, 119, 114, 115, 116, 117,
}

var decorTiles = []int{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 280, 281, 288, 289, 281, 290, 329, 293, 0, 0, 0, 0, 0, 0,
	0, 281, 280, 304, 305, 280, 0, 345, 309, 330, 0, 0, 0, 0, 0,
	0, 279, 279, 0, 0, 279, 231, 232, 233, 346, 300, 0, 0, 0, 0,
	0, 295, 280, 0, 0, 280, 0, 248, 0, 0, 252, 0, 0, 0, 0,
	0, 0, 296, 0, 0, 281, 0, 248, 0, 173, 174, 175, 0, 0, 0,
	0, 257, 258, 259, 0, 295, 262, 248, 0, 189, 190, 191, 0, 0, 0,
	0, 273, 274, 275, 0, 245, 278, 264, 224, 205, 206, 207, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 240, 221, 222, 223, 0, 291, 277,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Package grid is the view model behind the client table: fixed columns,
// token search, stable sort, paging and the filtered row count.
//
// A Grid does not render anything. Renderers read PageRows and PageInfo after
// a draw; draw listeners registered with OnDraw are told the filtered count
// every time the projection is recomputed.
package grid

// Package http contains the chi HTTP handlers of the normalization service.
//
// The API accepts marketplace exports as multipart uploads, runs them
// through the processing pipeline and answers either with JSON or with a
// downloadable xlsx/csv file, selected by the "format" form field. Errors
// are rendered as RFC 7807 problem documents:
//
//	{
//	    "type": "/errors/missing-columns",
//	    "title": "Missing Columns",
//	    "status": 400,
//	    "detail": "kolom tidak ditemukan: No. Pesanan",
//	    "instance": "/api/orders/process"
//	}
package http

// Package xml renders a tree as indented XML or as a browsable HTML page.
//
// The XML form names every element after the display names of the
// resolver: an item becomes an element named after its rdf:type (or
// "Thing"), and each of its edges an element named after the predicate:
//
//	<Person id="alice">
//	  <name>Alice</name>
//	  <knows id="bob"/>
//	  <author inverse="true">
//	    <Document id="report">
//	      <title>Q3</title>
//	    </Document>
//	  </author>
//	</Person>
//
// Display names are not guaranteed to be valid XML names; an IRI without a
// registered prefix is written as is.
//
// The HTML form links every resource and predicate to a caller supplied
// base URL followed by the escaped IRI, so that a server can offer the
// whole graph for browsing one tree at a time.
package xml

package extractor

import (
	"fmt"
	"strings"
)

// DefaultLanguage is the language the catalog text is assumed to be written
// in. The instruction text is a behavioral contract with the model; only the
// language is configurable.
const DefaultLanguage = "Italian"

const promptTemplate = `The following is text extracted from pages %s of a PDF furniture catalog.
It contains information for 1 or more products that the company sells.
Each product can have 1 or more price tables. Extract each product on the page
in the same language (%s) and output the data as a JSON array, with each
product represented as a JSON object with the attributes listed below:

ATTRIBUTES:
- product_name: name of the product
- brand_name: name of the brand
- designer: name of the designer
- year: year of manufacture
- type_of_product: type of product (e.g., sofa, table, etc.)
- all_colors: an array of all colors mentioned for the product
- page_reference: an object containing the PDF file path as a string and the page numbers of the product as an array

%s`

// BuildPrompt renders the fixed instruction template followed by each page's
// text labeled with its page number. Page text is embedded verbatim between
// plain double quotes, never escaped. Byte-identical output for identical
// input.
func BuildPrompt(b Batch, language string) string {
	if language == "" {
		language = DefaultLanguage
	}

	nums := make([]string, len(b.PageNumbers))
	var combined strings.Builder
	for i, n := range b.PageNumbers {
		nums[i] = fmt.Sprintf("%d", n)
		if i > 0 {
			combined.WriteString("\n")
		}
		fmt.Fprintf(&combined, "TEXT FROM PAGE %d:\n\"%s\"", n, b.Texts[i])
	}

	return fmt.Sprintf(promptTemplate, strings.Join(nums, ", "), language, combined.String())
}

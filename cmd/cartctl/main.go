// cartctl is a CLI tool for exercising the marketcart HTTP API.
// Each command performs a single operation, making it composable for scripts.
//
// Commands:
//
//	cartctl vendors -server URL
//	cartctl products -server URL -vendor SLUG
//	cartctl cart -server URL -vendor SLUG
//	cartctl add -server URL -vendor SLUG -product ID [-qty N]
//	cartctl update -server URL -vendor SLUG -item ID -qty N
//	cartctl remove -server URL -vendor SLUG -item ID
//	cartctl clear -server URL -vendor SLUG
//	cartctl discount -server URL -vendor SLUG -code CODE [-remove]
//	cartctl wishlist -server URL -vendor SLUG [-add ID] [-toggle ID] [-remove ID]
//	cartctl summary -server URL
//	cartctl coupon -server URL -code CODE -subtotal CENTS
//
// Examples:
//
//	cartctl add -server http://localhost:8080 -vendor techgear-pro -product prod-1 -qty 2
//	cartctl discount -server http://localhost:8080 -vendor techgear-pro -code SAVE10
//	cartctl summary -server http://localhost:8080
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

var client = &http.Client{Timeout: 30 * time.Second}

// Global flags (apply to all commands)
var (
	serverURL string
	quiet     bool
	noColor   bool
	verbose   bool
)

// agentHeader identifies cartctl to the server as an RFC 8941 dictionary.
const agentHeader = `name="cartctl";version="1.0"`

// ANSI color codes
var (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

func init() {
	if os.Getenv("NO_COLOR") != "" {
		disableColors()
	}
}

func disableColors() {
	colorReset, colorRed, colorGreen, colorYellow = "", "", "", ""
	colorBlue, colorCyan, colorGray, colorBold = "", "", "", ""
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "vendors":
		runVendors(args)
	case "products":
		runProducts(args)
	case "cart":
		runCart(args)
	case "add":
		runAdd(args)
	case "update":
		runUpdate(args)
	case "remove":
		runRemove(args)
	case "clear":
		runClear(args)
	case "discount":
		runDiscount(args)
	case "wishlist":
		runWishlist(args)
	case "summary":
		runSummary(args)
	case "coupon":
		runCoupon(args)
	case "-h", "-help", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `cartctl - marketcart shopping cart test tool

Usage:
  cartctl <command> [options]

Commands:
  vendors   List marketplace vendors
  products  List a vendor's products
  cart      Show a vendor cart
  add       Add a product to a vendor cart
  update    Change a cart line's quantity
  remove    Remove a cart line
  clear     Empty a vendor cart
  discount  Apply or remove a discount code
  wishlist  Show or modify a vendor wishlist
  summary   Show totals across all vendor carts
  coupon    Validate a coupon code against a subtotal

Examples:
  # Add two units and apply a discount
  cartctl add -server http://localhost:8080 -vendor techgear-pro -product prod-1 -qty 2
  cartctl discount -server http://localhost:8080 -vendor techgear-pro -code SAVE10

  # Capture the cart total for scripting
  TOTAL=$(cartctl cart -server http://localhost:8080 -vendor techgear-pro -q)

Run 'cartctl <command> -h' for command-specific options.
`)
}

// commonFlags registers the flags shared by every command.
func commonFlags(fs *flag.FlagSet) {
	fs.StringVar(&serverURL, "server", "http://localhost:8080", "cartd base URL")
	fs.BoolVar(&quiet, "q", false, "Quiet mode - minimal output")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&verbose, "v", false, "Verbose - show full request/response")
}

// =============================================================================
// CATALOG COMMANDS
// =============================================================================

func runVendors(args []string) {
	fs := flag.NewFlagSet("vendors", flag.ExitOnError)
	commonFlags(fs)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: cartctl vendors [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)
	if noColor {
		disableColors()
	}

	resp, err := doRequest("GET", "/api/vendors", nil)
	if err != nil {
		fatal("Failed to list vendors: %v", err)
	}

	vendors, _ := resp["vendors"].([]interface{})
	if quiet {
		for _, v := range vendors {
			if vm, ok := v.(map[string]interface{}); ok {
				fmt.Println(vm["slug"])
			}
		}
		return
	}

	printSuccess("%d vendors", len(vendors))
	for _, v := range vendors {
		vm, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		fmt.Printf("  %s%s%s  %s\n", colorCyan, vm["slug"], colorReset, vm["name"])
	}
}

func runProducts(args []string) {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	commonFlags(fs)
	var vendor string
	fs.StringVar(&vendor, "vendor", "", "Vendor slug (required)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: cartctl products -vendor SLUG [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)
	if noColor {
		disableColors()
	}
	if vendor == "" {
		fs.Usage()
		os.Exit(1)
	}

	resp, err := doRequest("GET", "/api/vendors/"+url.PathEscape(vendor)+"/products", nil)
	if err != nil {
		fatal("Failed to list products: %v", err)
	}

	products, _ := resp["products"].([]interface{})
	if quiet {
		for _, p := range products {
			if pm, ok := p.(map[string]interface{}); ok {
				fmt.Println(pm["id"])
			}
		}
		return
	}

	printSuccess("%d products for %s", len(products), vendor)
	for _, p := range products {
		pm, ok := p.(map[string]interface{})
		if !ok {
			continue
		}
		fmt.Printf("  %s%s%s  %s (%s)\n",
			colorCyan, pm["id"], colorReset, pm["name"], formatCents(pm["price"]))
	}
}

// =============================================================================
// CART COMMANDS
// =============================================================================

func runCart(args []string) {
	fs := flag.NewFlagSet("cart", flag.ExitOnError)
	commonFlags(fs)
	var vendor string
	fs.StringVar(&vendor, "vendor", "", "Vendor slug (required)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: cartctl cart -vendor SLUG [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)
	if noColor {
		disableColors()
	}
	if vendor == "" {
		fs.Usage()
		os.Exit(1)
	}

	resp, err := doRequest("GET", "/api/vendors/"+url.PathEscape(vendor)+"/cart", nil)
	if err != nil {
		fatal("Failed to get cart: %v", err)
	}

	printCartSummary(resp)
}

func runAdd(args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	commonFlags(fs)
	var vendor, productID string
	var quantity int
	fs.StringVar(&vendor, "vendor", "", "Vendor slug (required)")
	fs.StringVar(&productID, "product", "", "Product ID (required)")
	fs.IntVar(&quantity, "qty", 1, "Quantity")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: cartctl add -vendor SLUG -product ID [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)
	if noColor {
		disableColors()
	}
	if vendor == "" || productID == "" {
		fs.Usage()
		os.Exit(1)
	}

	reqBody := map[string]interface{}{
		"product_id": productID,
		"quantity":   quantity,
	}

	resp, err := doRequest("POST", "/api/vendors/"+url.PathEscape(vendor)+"/cart/items", reqBody)
	if err != nil {
		fatal("Failed to add item: %v", err)
	}

	if rejected := printRejection(resp); rejected {
		os.Exit(1)
	}

	if quiet {
		if item, ok := resp["item"].(map[string]interface{}); ok {
			fmt.Println(item["id"])
		}
		return
	}
	printSuccess("Added %d x %s", quantity, productID)
	if item, ok := resp["item"].(map[string]interface{}); ok {
		fmt.Printf("  Line: %s%s%s\n", colorCyan, item["id"], colorReset)
	}
	printTotals(resp)
}

func runUpdate(args []string) {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	commonFlags(fs)
	var vendor, itemID string
	var quantity int
	fs.StringVar(&vendor, "vendor", "", "Vendor slug (required)")
	fs.StringVar(&itemID, "item", "", "Cart line ID (required)")
	fs.IntVar(&quantity, "qty", -1, "New quantity (0 removes the line)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: cartctl update -vendor SLUG -item ID -qty N [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)
	if noColor {
		disableColors()
	}
	if vendor == "" || itemID == "" || quantity < 0 {
		fs.Usage()
		os.Exit(1)
	}

	reqBody := map[string]interface{}{"quantity": quantity}
	path := "/api/vendors/" + url.PathEscape(vendor) + "/cart/items/" + url.PathEscape(itemID)
	resp, err := doRequest("PUT", path, reqBody)
	if err != nil {
		fatal("Failed to update quantity: %v", err)
	}

	if rejected := printRejection(resp); rejected {
		os.Exit(1)
	}

	if quantity == 0 {
		printSuccess("Line %s removed", itemID)
	} else {
		printSuccess("Quantity set to %d", quantity)
	}
	printTotals(resp)
}

func runRemove(args []string) {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	commonFlags(fs)
	var vendor, itemID string
	fs.StringVar(&vendor, "vendor", "", "Vendor slug (required)")
	fs.StringVar(&itemID, "item", "", "Cart line ID (required)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: cartctl remove -vendor SLUG -item ID [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)
	if noColor {
		disableColors()
	}
	if vendor == "" || itemID == "" {
		fs.Usage()
		os.Exit(1)
	}

	path := "/api/vendors/" + url.PathEscape(vendor) + "/cart/items/" + url.PathEscape(itemID)
	if _, err := doRequest("DELETE", path, nil); err != nil {
		fatal("Failed to remove item: %v", err)
	}
	printSuccess("Line %s removed", itemID)
}

func runClear(args []string) {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)
	commonFlags(fs)
	var vendor string
	fs.StringVar(&vendor, "vendor", "", "Vendor slug (required)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: cartctl clear -vendor SLUG [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)
	if noColor {
		disableColors()
	}
	if vendor == "" {
		fs.Usage()
		os.Exit(1)
	}

	if _, err := doRequest("DELETE", "/api/vendors/"+url.PathEscape(vendor)+"/cart", nil); err != nil {
		fatal("Failed to clear cart: %v", err)
	}
	printSuccess("Cart cleared for %s", vendor)
}

func runDiscount(args []string) {
	fs := flag.NewFlagSet("discount", flag.ExitOnError)
	commonFlags(fs)
	var vendor, code string
	var remove bool
	fs.StringVar(&vendor, "vendor", "", "Vendor slug (required)")
	fs.StringVar(&code, "code", "", "Discount code (required unless -remove)")
	fs.BoolVar(&remove, "remove", false, "Remove the applied discount")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: cartctl discount -vendor SLUG -code CODE [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)
	if noColor {
		disableColors()
	}
	if vendor == "" || (code == "" && !remove) {
		fs.Usage()
		os.Exit(1)
	}

	path := "/api/vendors/" + url.PathEscape(vendor) + "/cart/discount"
	if remove {
		if _, err := doRequest("DELETE", path, nil); err != nil {
			fatal("Failed to remove discount: %v", err)
		}
		printSuccess("Discount removed")
		return
	}

	resp, err := doRequest("POST", path, map[string]interface{}{"code": code})
	if err != nil {
		fatal("Failed to apply discount: %v", err)
	}

	if valid, ok := resp["valid"].(bool); ok && !valid {
		msg, _ := resp["message"].(string)
		printError("Rejected: %s", msg)
		if suggestions, ok := resp["suggestions"].([]interface{}); ok && len(suggestions) > 0 {
			parts := make([]string, 0, len(suggestions))
			for _, s := range suggestions {
				if str, ok := s.(string); ok {
					parts = append(parts, str)
				}
			}
			fmt.Printf("  Try: %s%s%s\n", colorYellow, strings.Join(parts, ", "), colorReset)
		}
		os.Exit(1)
	}

	printSuccess("Discount %s applied", code)
	printTotals(resp)
}

// =============================================================================
// WISHLIST COMMAND
// =============================================================================

func runWishlist(args []string) {
	fs := flag.NewFlagSet("wishlist", flag.ExitOnError)
	commonFlags(fs)
	var vendor, addID, toggleID, removeID string
	var clearAll bool
	fs.StringVar(&vendor, "vendor", "", "Vendor slug (required)")
	fs.StringVar(&addID, "add", "", "Add a product by ID")
	fs.StringVar(&toggleID, "toggle", "", "Toggle a product by ID")
	fs.StringVar(&removeID, "remove", "", "Remove a product by ID")
	fs.BoolVar(&clearAll, "clear", false, "Clear the wishlist")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: cartctl wishlist -vendor SLUG [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)
	if noColor {
		disableColors()
	}
	if vendor == "" {
		fs.Usage()
		os.Exit(1)
	}

	base := "/api/vendors/" + url.PathEscape(vendor) + "/wishlist"

	switch {
	case addID != "":
		resp, err := doRequest("POST", base+"/items", map[string]interface{}{"product_id": addID})
		if err != nil {
			fatal("Failed to add to wishlist: %v", err)
		}
		printSuccess("Saved %s (%v items)", addID, resp["count"])
	case toggleID != "":
		reqBody := map[string]interface{}{"product_id": toggleID, "toggle": true}
		resp, err := doRequest("POST", base+"/items", reqBody)
		if err != nil {
			fatal("Failed to toggle wishlist item: %v", err)
		}
		if saved, ok := resp["saved"].(bool); ok && saved {
			printSuccess("Saved %s (%v items)", toggleID, resp["count"])
		} else {
			printSuccess("Removed %s (%v items)", toggleID, resp["count"])
		}
	case removeID != "":
		if _, err := doRequest("DELETE", base+"/items/"+url.PathEscape(removeID), nil); err != nil {
			fatal("Failed to remove wishlist item: %v", err)
		}
		printSuccess("Removed %s", removeID)
	case clearAll:
		if _, err := doRequest("DELETE", base, nil); err != nil {
			fatal("Failed to clear wishlist: %v", err)
		}
		printSuccess("Wishlist cleared")
	default:
		resp, err := doRequest("GET", base, nil)
		if err != nil {
			fatal("Failed to get wishlist: %v", err)
		}
		items, _ := resp["items"].([]interface{})
		if quiet {
			for _, it := range items {
				if im, ok := it.(map[string]interface{}); ok {
					fmt.Println(im["product_id"])
				}
			}
			return
		}
		printSuccess("%d saved items", len(items))
		for _, it := range items {
			im, ok := it.(map[string]interface{})
			if !ok {
				continue
			}
			fmt.Printf("  %s%s%s\n", colorCyan, im["product_id"], colorReset)
		}
	}
}

// =============================================================================
// SUMMARY AND COUPON COMMANDS
// =============================================================================

func runSummary(args []string) {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	commonFlags(fs)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: cartctl summary [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)
	if noColor {
		disableColors()
	}

	resp, err := doRequest("GET", "/api/marketplace/summary", nil)
	if err != nil {
		fatal("Failed to get summary: %v", err)
	}

	if quiet {
		if subtotal, ok := resp["subtotal"].(float64); ok {
			fmt.Printf("%d\n", int64(subtotal))
		}
		return
	}

	printSuccess("Marketplace summary")
	fmt.Printf("  Items: %v  Subtotal: %s%s%s  Wishlist: %v\n",
		resp["total_quantity"], colorGreen, formatCents(resp["subtotal"]), colorReset,
		resp["wishlist_count"])
	if vendors, ok := resp["vendors"].([]interface{}); ok {
		for _, v := range vendors {
			vm, ok := v.(map[string]interface{})
			if !ok {
				continue
			}
			fmt.Printf("  %s%s%s  qty=%v  %s\n",
				colorCyan, vm["vendor"], colorReset, vm["total_quantity"], formatCents(vm["subtotal"]))
		}
	}
}

func runCoupon(args []string) {
	fs := flag.NewFlagSet("coupon", flag.ExitOnError)
	commonFlags(fs)
	var code string
	var subtotal int64
	fs.StringVar(&code, "code", "", "Coupon code (required)")
	fs.Int64Var(&subtotal, "subtotal", 0, "Order subtotal in cents")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: cartctl coupon -code CODE -subtotal CENTS [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)
	if noColor {
		disableColors()
	}
	if code == "" {
		fs.Usage()
		os.Exit(1)
	}

	reqBody := map[string]interface{}{"code": code, "subtotal": subtotal}
	resp, err := doRequest("POST", "/api/coupons/validate", reqBody)
	if err != nil {
		fatal("Coupon rejected: %v", err)
	}

	if quiet {
		if amount, ok := resp["discount_amount"].(float64); ok {
			fmt.Printf("%d\n", int64(amount))
		}
		return
	}
	printSuccess("Coupon %s valid", code)
	fmt.Printf("  Type: %s  Discount: %s%s%s\n",
		resp["discount_type"], colorGreen, formatCents(resp["discount_amount"]), colorReset)
}

// =============================================================================
// HTTP HELPERS
// =============================================================================

func doRequest(method, path string, body interface{}) (map[string]interface{}, error) {
	var reqBody io.Reader
	var reqJSON []byte

	if body != nil {
		var err error
		reqJSON, err = json.MarshalIndent(body, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		reqBody = bytes.NewReader(reqJSON)
	}

	reqURL := serverURL + path
	req, err := http.NewRequest(method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Storefront-Agent", agentHeader)

	if !quiet {
		printRequest(method, path, reqJSON)
	}

	start := time.Now()
	resp, err := client.Do(req)
	duration := time.Since(start)

	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if !quiet {
		printResponse(resp.StatusCode, respBody, duration)
	}

	var result map[string]interface{}
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &result); err != nil && resp.StatusCode < 400 {
			return nil, fmt.Errorf("parsing response: %w", err)
		}
	}

	// Business rejections come back with a parseable body and a 4xx status.
	// Surface those to the caller instead of failing the request.
	if resp.StatusCode >= 400 {
		if result != nil {
			if _, hasSuccess := result["success"]; hasSuccess {
				return result, nil
			}
			if _, hasValid := result["valid"]; hasValid {
				return result, nil
			}
		}
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	return result, nil
}

// =============================================================================
// OUTPUT HELPERS
// =============================================================================

// printRejection reports a structured cart rejection. Returns true if the
// operation was rejected.
func printRejection(resp map[string]interface{}) bool {
	success, ok := resp["success"].(bool)
	if !ok || success {
		return false
	}
	msg, _ := resp["message"].(string)
	code, _ := resp["error"].(string)
	if msg == "" {
		msg = code
	}
	printError("Rejected: %s", msg)
	if max, ok := resp["max_quantity"].(float64); ok && max > 0 {
		fmt.Printf("  Max quantity: %s%d%s\n", colorYellow, int(max), colorReset)
	}
	return true
}

func printTotals(resp map[string]interface{}) {
	summary, ok := resp["summary"].(map[string]interface{})
	if !ok || quiet {
		return
	}
	fmt.Printf("  Subtotal: %s  Total: %s%s%s\n",
		formatCents(summary["subtotal"]), colorGreen, formatCents(summary["total"]), colorReset)
}

func printCartSummary(resp map[string]interface{}) {
	items, _ := resp["items"].([]interface{})
	summary, _ := resp["summary"].(map[string]interface{})

	if quiet {
		if summary != nil {
			if total, ok := summary["total"].(float64); ok {
				fmt.Printf("%d\n", int64(total))
			}
		}
		return
	}

	printSuccess("%d lines", len(items))
	for _, it := range items {
		im, ok := it.(map[string]interface{})
		if !ok {
			continue
		}
		fmt.Printf("  %s%s%s  %v x %s = %s\n",
			colorCyan, im["id"], colorReset, im["quantity"], im["product_id"],
			formatCents(im["line_total"]))
	}
	if discount, ok := resp["discount"].(map[string]interface{}); ok && discount != nil {
		fmt.Printf("  Discount: %s%s%s\n", colorYellow, discount["code"], colorReset)
	}
	if summary != nil {
		fmt.Printf("  Subtotal: %s  Shipping: %s  Tax: %s\n",
			formatCents(summary["subtotal"]), formatCents(summary["shipping"]), formatCents(summary["tax"]))
		fmt.Printf("  Total: %s%s%s%s\n", colorBold, colorGreen, formatCents(summary["total"]), colorReset)
	}
}

func printRequest(method, path string, body []byte) {
	fmt.Printf("\n%s▶ REQUEST%s %s%s %s%s\n", colorYellow, colorReset, colorBold, method, path, colorReset)
	if body != nil {
		printJSON(body, "  ")
	}
}

func printResponse(status int, body []byte, duration time.Duration) {
	statusColor := colorGreen
	if status >= 400 {
		statusColor = colorRed
	}
	fmt.Printf("\n%s◀ RESPONSE%s %s%d%s (%v)\n", colorCyan, colorReset, statusColor, status, colorReset, duration)
	printJSON(body, "  ")
}

func printJSON(data []byte, prefix string) {
	if len(data) == 0 {
		return
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, prefix, "  "); err != nil {
		fmt.Printf("%s%s\n", prefix, string(data))
		return
	}

	output := pretty.String()
	if !verbose {
		lines := strings.Split(output, "\n")
		if len(lines) > 30 {
			lines = append(lines[:25], fmt.Sprintf("%s  %s(%d more lines, use -v for full output)%s", prefix, colorGray, len(lines)-25, colorReset))
			output = strings.Join(lines, "\n")
		}
	}
	fmt.Println(output)
}

func printSuccess(format string, args ...interface{}) {
	if !quiet {
		fmt.Printf("%s✓ %s%s\n", colorGreen, fmt.Sprintf(format, args...), colorReset)
	}
}

func printError(format string, args ...interface{}) {
	fmt.Printf("%s✗ %s%s\n", colorRed, fmt.Sprintf(format, args...), colorReset)
}

func formatCents(v interface{}) string {
	switch val := v.(type) {
	case float64:
		return fmt.Sprintf("$%.2f", val/100)
	case int:
		return fmt.Sprintf("$%.2f", float64(val)/100)
	case int64:
		return fmt.Sprintf("$%.2f", float64(val)/100)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s✗ %s%s\n", colorRed, fmt.Sprintf(format, args...), colorReset)
	os.Exit(1)
}

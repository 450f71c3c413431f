package feed

import (
	"testing"
)

func TestParseRSS2(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <description>Test Description</description>
    <item>
      <title>Test Item 1</title>
      <link>https://example.com/item1</link>
      <description>Test Item 1 Description</description>
      <guid>item-1</guid>
      <pubDate>Fri, 09 Aug 2024 16:34:41 GMT</pubDate>
    </item>
    <item>
      <title>Test Item 2</title>
      <link>https://example.com/item2</link>
      <description>Test Item 2 Description</description>
      <guid>item-2</guid>
      <pubDate>Sat, 10 Aug 2024 01:23:37 +0200</pubDate>
    </item>
  </channel>
</rss>`

	parser := NewParser()
	result, err := parser.Run([]byte(rssData))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if result.Title != "Test Feed" {
		t.Errorf("Expected title 'Test Feed', got: %s", result.Title)
	}
	if result.Link != "https://example.com" {
		t.Errorf("Expected link 'https://example.com', got: %s", result.Link)
	}

	if len(result.Entries) != 2 {
		t.Fatalf("Expected 2 entries, got: %d", len(result.Entries))
	}

	entry1 := result.Entries[0]
	if entry1.ID != "item-1" {
		t.Errorf("Expected ID 'item-1', got: %s", entry1.ID)
	}
	if entry1.Title != "Test Item 1" {
		t.Errorf("Expected title 'Test Item 1', got: %s", entry1.Title)
	}
	if entry1.Link != "https://example.com/item1" {
		t.Errorf("Expected link 'https://example.com/item1', got: %s", entry1.Link)
	}
	if entry1.Description != "Test Item 1 Description" {
		t.Errorf("Expected description 'Test Item 1 Description', got: %s", entry1.Description)
	}
	if entry1.Published != "Fri, 09 Aug 2024 16:34:41 GMT" {
		t.Errorf("Expected raw published string, got: %s", entry1.Published)
	}

	// Feed order is preserved
	if result.Entries[1].ID != "item-2" {
		t.Errorf("Expected second entry 'item-2', got: %s", result.Entries[1].ID)
	}
	if result.Entries[1].Published != "Sat, 10 Aug 2024 01:23:37 +0200" {
		t.Errorf("Expected raw published string, got: %s", result.Entries[1].Published)
	}
}

func TestParseAtom(t *testing.T) {
	atomData := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Test Atom Feed</title>
  <link href="https://example.com"/>
  <updated>2023-07-03T12:00:00Z</updated>
  <id>urn:uuid:1234567890</id>
  <entry>
    <title>Test Entry</title>
    <link href="https://example.com/entry1"/>
    <id>urn:uuid:entry-1</id>
    <updated>2023-07-03T10:00:00Z</updated>
    <summary>Entry summary</summary>
  </entry>
</feed>`

	parser := NewParser()
	result, err := parser.Run([]byte(atomData))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if result.Title != "Test Atom Feed" {
		t.Errorf("Expected title 'Test Atom Feed', got: %s", result.Title)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("Expected 1 entry, got: %d", len(result.Entries))
	}

	entry := result.Entries[0]
	if entry.ID != "urn:uuid:entry-1" {
		t.Errorf("Expected ID 'urn:uuid:entry-1', got: %s", entry.ID)
	}
	// Atom entries without <published> fall back to <updated>
	if entry.Published != "2023-07-03T10:00:00Z" {
		t.Errorf("Expected published '2023-07-03T10:00:00Z', got: %s", entry.Published)
	}
}

func TestParseEntryWithoutGUIDUsesLink(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>No GUID</title>
    <item>
      <title>Linked Item</title>
      <link>https://example.com/linked</link>
      <pubDate>Fri, 09 Aug 2024 16:34:41 GMT</pubDate>
    </item>
  </channel>
</rss>`

	parser := NewParser()
	result, err := parser.Run([]byte(rssData))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(result.Entries) != 1 {
		t.Fatalf("Expected 1 entry, got: %d", len(result.Entries))
	}
	if result.Entries[0].ID != "https://example.com/linked" {
		t.Errorf("Expected link as ID, got: %s", result.Entries[0].ID)
	}
}

func TestParseInvalidFeed(t *testing.T) {
	parser := NewParser()
	_, err := parser.Run([]byte("invalid xml"))

	if err == nil {
		t.Error("Expected error for invalid XML")
	}
}

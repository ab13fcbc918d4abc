package extraction

// deliveryPrompt is the shared instruction used by all LLM backends. The
// field mapping and header propagation rules here are a contract with the
// normalizer and the exporter; change them together.
const deliveryPrompt = `Analyze this image of a delivery receipt or invoice.
Extract the following information into a JSON structure:
- Control No. (or DR#, Invoice#) -> map to 'drNumber'
- Date -> map to 'date'
- The table of items. For each row, extract:
    - Qty -> 'qty'
    - Unit -> 'unit'
    - Item Description -> 'item'
    - Note/Remarks -> 'remarks' (optional)
    - Received By -> 'receivedBy' (optional)

Return a JSON object with a key 'items' which is an array of objects.
Each object should have: date, qty, unit, item, drNumber, remarks, receivedBy.
Propagate the header Date and Control No. to every item row.
Format the date as "MMM DD, YYYY" if possible.
Output ONLY valid JSON.`
